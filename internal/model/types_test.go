package model

import (
	"testing"
	"time"
)

func TestMarket_EstimatedStart(t *testing.T) {
	m := Market{ExpectedExpiration: time.Date(2025, 9, 5, 2, 0, 0, 0, time.UTC)}
	want := time.Date(2025, 9, 4, 23, 0, 0, 0, time.UTC)
	if !m.EstimatedStart().Equal(want) {
		t.Errorf("EstimatedStart = %v, want %v", m.EstimatedStart(), want)
	}
}

func TestMarket_ExpiresOn(t *testing.T) {
	denver, err := time.LoadLocation("America/Denver")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 2am UTC Friday is 8pm Thursday in Denver.
	m := Market{ExpectedExpiration: time.Date(2025, 9, 5, 2, 0, 0, 0, time.UTC)}

	thursday := time.Date(2025, 9, 4, 12, 0, 0, 0, denver)
	if !m.ExpiresOn(thursday, denver) {
		t.Error("expected market to expire on Thursday in Denver")
	}

	friday := thursday.AddDate(0, 0, 1)
	if m.ExpiresOn(friday, denver) {
		t.Error("market should not expire on Friday in Denver")
	}

	// Same instant evaluated in UTC lands on Friday.
	if m.ExpiresOn(thursday, time.UTC) {
		t.Error("in UTC the expiration date is Friday, not Thursday")
	}
}

func TestParseSide(t *testing.T) {
	if side, err := ParseSide("yes"); err != nil || side != SideYes {
		t.Errorf("ParseSide(yes) = %v, %v", side, err)
	}
	if side, err := ParseSide("no"); err != nil || side != SideNo {
		t.Errorf("ParseSide(no) = %v, %v", side, err)
	}
	if _, err := ParseSide("maybe"); err == nil {
		t.Error("expected error for invalid side")
	}
}

func TestParseAction(t *testing.T) {
	if action, err := ParseAction("buy"); err != nil || action != ActionBuy {
		t.Errorf("ParseAction(buy) = %v, %v", action, err)
	}
	if action, err := ParseAction("sell"); err != nil || action != ActionSell {
		t.Errorf("ParseAction(sell) = %v, %v", action, err)
	}
	if _, err := ParseAction("hold"); err == nil {
		t.Error("expected error for invalid action")
	}
}
