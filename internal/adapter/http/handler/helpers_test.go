package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ervand7/balances/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrAccountExists, http.StatusConflict},
		{domain.ErrTransactionExists, http.StatusConflict},
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrTransactionNotFound, http.StatusNotFound},
		{domain.ErrZeroAmount, http.StatusBadRequest},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrUnknownDirection, http.StatusBadRequest},
		{domain.ErrInvalidAccountName, http.StatusBadRequest},
		{domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{errors.New("database on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := mapDomainError(tt.err); got != tt.want {
			t.Errorf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestParseTimeQuery(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	req := httptest.NewRequest(http.MethodGet, "/x?at="+at.Format(time.RFC3339), nil)
	got, err := parseTimeQuery(req, "at")
	if err != nil || got == nil || !got.Equal(at) {
		t.Fatalf("expected %v, got %v err=%v", at, got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	got, err = parseTimeQuery(req, "at")
	if err != nil || got != nil {
		t.Fatalf("expected nil for missing param, got %v err=%v", got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/x?at=05-01-2024", nil)
	if _, err = parseTimeQuery(req, "at"); err == nil {
		t.Fatal("expected error for malformed timestamp")
	}
}
