package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/club"
	"github.com/mauv0809/padel-draw/internal/metrics"
	"github.com/mauv0809/padel-draw/internal/notifier"
	"github.com/mauv0809/padel-draw/internal/tournament"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier. channelID is used for tournaments
// that do not name their own channel.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) channelFor(t *club.Tournament) string {
	if t != nil && t.SlackChannel != "" {
		return t.SlackChannel
	}
	return s.channelID
}

func (s *Notifier) sendMessage(channel string, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", channel, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		channel,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channel)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendDrawPublished(t *club.Tournament, d tournament.Draw, names notifier.Names, dryRun bool) error {
	_, _, err := s.sendMessage(s.channelFor(t), s.formatDrawPublished(t, d, names), dryRun)
	return err
}

func (s *Notifier) SendMatchResult(t *club.Tournament, m tournament.Match, names notifier.Names, dryRun bool) error {
	_, _, err := s.sendMessage(s.channelFor(t), s.formatMatchResult(t, m, names), dryRun)
	return err
}

func (s *Notifier) SendChampion(t *club.Tournament, championID string, names notifier.Names, dryRun bool) error {
	_, _, err := s.sendMessage(s.channelFor(t), s.formatChampion(t, championID, names), dryRun)
	return err
}

// FormatStandingsResponse formats a zone table for a slash command response.
func (s *Notifier) FormatStandingsResponse(t *club.Tournament, zoneID string, table []tournament.Standing, names notifier.Names) (any, error) {
	return s.formatStandings(t, zoneID, table, names), nil
}

// FormatReadyMatchesResponse formats the matches that can be played now.
func (s *Notifier) FormatReadyMatchesResponse(t *club.Tournament, matches []tournament.Match, names notifier.Names) (any, error) {
	return s.formatReadyMatches(t, matches, names), nil
}

func tournamentName(t *club.Tournament) string {
	if t == nil {
		return "Tournament"
	}
	return t.Name
}

func plain(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("plain_text", text, true, false)
}

func section(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(plain(text), nil, nil)
}

// formatDrawPublished lists the first-round pairings of an elimination draw,
// the members of every zone, or the knockout pairings once they exist.
func (s *Notifier) formatDrawPublished(t *club.Tournament, d tournament.Draw, names notifier.Names) slack.Message {
	blocks := make([]slack.Block, 0)

	title := fmt.Sprintf(":tennis: %s: the draw is out! :tennis:", tournamentName(t))
	if d.Knockout != nil {
		title = fmt.Sprintf(":tennis: %s: knockout draw :tennis:", tournamentName(t))
	}
	blocks = append(blocks, slack.NewHeaderBlock(plain(title)))

	switch {
	case d.Knockout != nil:
		blocks = append(blocks, bracketBlocks(d.Knockout, names)...)
	case d.Format == tournament.FormatZones:
		for _, z := range d.Zones {
			lines := make([]string, len(z.Members))
			for i, id := range z.Members {
				lines[i] = fmt.Sprintf("%d. %s", i+1, names.Label(id))
			}
			blocks = append(blocks, section(fmt.Sprintf("Zone %s\n%s", z.ID, strings.Join(lines, "\n"))))
		}
	default:
		blocks = append(blocks, bracketBlocks(d.Bracket, names)...)
	}

	blocks = append(blocks, slack.NewContextBlock("", plain(fmt.Sprintf("Format: %s", strings.ToLower(string(d.Format))))))
	return slack.NewBlockMessage(blocks...)
}

func bracketBlocks(b *tournament.Bracket, names notifier.Names) []slack.Block {
	if b == nil || len(b.Rounds) == 0 {
		return []slack.Block{section("No matches to play.")}
	}
	var lines, byes []string
	for _, m := range b.Rounds[0].Matches {
		switch {
		case m.A.Bye && m.B.Bye:
		case m.A.Bye || m.B.Bye:
			byes = append(byes, names.Label(m.WinnerID))
		default:
			lines = append(lines, fmt.Sprintf("%s: %s vs %s", m.ID, names.Label(m.A.CoupleID), names.Label(m.B.CoupleID)))
		}
	}
	blocks := []slack.Block{section("First round:\n" + strings.Join(lines, "\n"))}
	if len(byes) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", plain("Byes: "+strings.Join(byes, ", "))))
	}
	return blocks
}

func formatSets(sets []tournament.SetScore) string {
	parts := make([]string, len(sets))
	for i, set := range sets {
		parts[i] = fmt.Sprintf("%d-%d", set.A, set.B)
	}
	return strings.Join(parts, ", ")
}

// formatMatchResult creates the Slack message for a finished match.
func (s *Notifier) formatMatchResult(t *club.Tournament, m tournament.Match, names notifier.Names) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, slack.NewHeaderBlock(plain(fmt.Sprintf(":tennis: %s: match finished", tournamentName(t)))))

	where := m.ID
	if m.ZoneID != "" {
		where = fmt.Sprintf("Zone %s, %s", m.ZoneID, m.ID)
	}
	text := fmt.Sprintf("%s\n%s vs %s", where, names.Label(m.A.CoupleID), names.Label(m.B.CoupleID))

	result := fmt.Sprintf("Result: %s won! :trophy:", names.Label(m.WinnerID))
	switch {
	case m.Status == tournament.MatchWalkover:
		result = fmt.Sprintf("Result: %s won by walkover", names.Label(m.WinnerID))
	case len(m.Sets) > 0:
		result += "\n" + formatSets(m.Sets)
	}
	blocks = append(blocks, section(text), section(result))

	if m.NextMatchID != "" {
		blocks = append(blocks, slack.NewContextBlock("", plain(fmt.Sprintf("%s moves on to %s", names.Label(m.WinnerID), m.NextMatchID))))
	}
	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatChampion(t *club.Tournament, championID string, names notifier.Names) slack.Message {
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(plain(fmt.Sprintf(":trophy: %s champions :trophy:", tournamentName(t)))),
		section(fmt.Sprintf("Congratulations %s!", names.Label(championID))),
	)
}

func (s *Notifier) formatStandings(t *club.Tournament, zoneID string, table []tournament.Standing, names notifier.Names) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, slack.NewHeaderBlock(plain(fmt.Sprintf("%s: zone %s", tournamentName(t), zoneID))))

	if len(table) == 0 {
		blocks = append(blocks, section("No couples in this zone."))
		return slack.NewBlockMessage(blocks...)
	}

	lots := false
	for _, row := range table {
		text := fmt.Sprintf("%d. %s\n> W %d | L %d | Sets %+d | Games %+d",
			row.Position, names.Label(row.CoupleID), row.Wins, row.Losses, row.SetDiff(), row.GameDiff())
		if row.DrawnByLot {
			text += " | *"
			lots = true
		}
		blocks = append(blocks, section(text))
	}
	if lots {
		blocks = append(blocks, slack.NewContextBlock("", plain("* position decided by drawing lots")))
	}
	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatReadyMatches(t *club.Tournament, matches []tournament.Match, names notifier.Names) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, slack.NewHeaderBlock(plain(fmt.Sprintf("%s: ready to play", tournamentName(t)))))
	if len(matches) == 0 {
		blocks = append(blocks, section("Nothing to play right now."))
		return slack.NewBlockMessage(blocks...)
	}
	lines := make([]string, len(matches))
	for i, m := range matches {
		lines[i] = fmt.Sprintf("• %s: %s vs %s", m.ID, names.Label(m.A.CoupleID), names.Label(m.B.CoupleID))
	}
	blocks = append(blocks, section(strings.Join(lines, "\n")))
	return slack.NewBlockMessage(blocks...)
}
