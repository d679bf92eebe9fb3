package domain

import (
	"errors"
	"time"
)

// MaxDrawsPerDay caps draws per (address, calendar day).
const MaxDrawsPerDay = 3

// Pre-flight draw rejections. These carry no side effects: nothing is
// persisted and no quota is consumed when Draw returns one of them.
var (
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrWrongNetwork       = errors.New("wrong network selected")
	ErrNoDrawsLeft        = errors.New("no draws left today")
	ErrDrawInProgress     = errors.New("draw already in progress")
)

// DayString formats t as the local-calendar-day key (local-clock midnight is
// the day boundary, no timezone normalization).
func DayString(t time.Time) string {
	return t.Format("2006-01-02")
}

// DrawRecord is the persisted result of a completed draw, scoped to
// (address, day). A record whose Date does not match the day it is read on is
// treated as absent.
type DrawRecord struct {
	Address    string `json:"address"`
	FortuneIdx int    `json:"fortune_idx"`
	ProverbIdx int    `json:"proverb_idx"`
	Date       string `json:"date"`
	TxHash     string `json:"tx_hash,omitempty"`
}

// DrawResult is what the orchestrator reveals once both the animation and the
// transaction acknowledgment have completed.
type DrawResult struct {
	Fortune    FortuneItem `json:"fortune"`
	Proverb    string      `json:"proverb"`
	FortuneIdx int         `json:"fortune_idx"`
	ProverbIdx int         `json:"proverb_idx"`
	TxHash     string      `json:"tx_hash"`
	Date       string      `json:"date"`
	DrawsUsed  int         `json:"draws_used"`
}
