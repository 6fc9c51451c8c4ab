package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/mauv0809/padel-draw/internal/club"
	"github.com/mauv0809/padel-draw/internal/tournament"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: c1", tournament.ErrDuplicateCouple), http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: 1 couple", tournament.ErrInsufficientEntrants), http.StatusUnprocessableEntity},
		{club.ErrInvalidCouple, http.StatusUnprocessableEntity},
		{club.ErrTournamentNotFound, http.StatusNotFound},
		{tournament.ErrMatchAlreadyDecided, http.StatusConflict},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}
