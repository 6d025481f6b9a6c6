// Package cards produces the placeholder card/numerology report content.
// The lookups are demo numerology (modulo arithmetic over birthdate
// fields), standing in for the real content engine; everything else in
// the system treats the output as opaque text.
package cards

import (
	"fmt"
	"strings"

	"github.com/arcana-labs/reportwriter/internal/dates"
	"github.com/arcana-labs/reportwriter/internal/models"
)

var ranks = []string{
	"Ace", "Two", "Three", "Four", "Five", "Six", "Seven",
	"Eight", "Nine", "Ten", "Jack", "Queen", "King",
}

var suits = []string{"Hearts", "Clubs", "Diamonds", "Spades"}

// Card is one of the 52 playing cards the demo content is built from.
type Card struct {
	Rank string
	Suit string
}

func (c Card) String() string {
	return c.Rank + " of " + c.Suit
}

// BirthCard maps a birthdate onto the deck by modulo. Deterministic for
// a given date, which is all the placeholder needs.
func BirthCard(d dates.Date) Card {
	idx := (d.Year + d.Month*31 + d.Day) % 52
	return Card{Rank: ranks[idx%13], Suit: suits[idx/13]}
}

// LifePath reduces the birthdate fields to a 1-9 numerology number.
func LifePath(d dates.Date) int {
	return (d.Year+d.Month+d.Day)%9 + 1
}

// YearCard shifts the birth card by age, so each year of life lands on
// a different card.
func YearCard(d dates.Date, age int) Card {
	idx := (d.Year + d.Month*31 + d.Day + age) % 52
	return Card{Rank: ranks[idx%13], Suit: suits[idx/13]}
}

// Subject is one person a report is written about.
type Subject struct {
	Name  string
	Birth dates.Date
	Age   int
}

// Generate composes the placeholder body for a report. Relationship
// reports require a partner; every other type ignores it.
func Generate(t models.ReportType, subject Subject, partner *Subject) string {
	card := BirthCard(subject.Birth)
	path := LifePath(subject.Birth)

	var b strings.Builder
	switch t {
	case models.ReportYearly:
		year := YearCard(subject.Birth, subject.Age)
		fmt.Fprintf(&b, "Yearly Report for %s (age %d)\n\n", subject.Name, subject.Age)
		fmt.Fprintf(&b, "Birth card: %s. This year's card: %s.\n", card, year)
		fmt.Fprintf(&b, "Life path number %d shapes the themes of the coming year.\n", path)
	case models.ReportLife:
		fmt.Fprintf(&b, "Life Report for %s\n\n", subject.Name)
		fmt.Fprintf(&b, "Born under the %s with life path number %d.\n", card, path)
		fmt.Fprintf(&b, "The %s suit colors the long arc of this life.\n", card.Suit)
	case models.ReportRelationship:
		fmt.Fprintf(&b, "Relationship Report for %s and %s\n\n", subject.Name, partner.Name)
		fmt.Fprintf(&b, "%s carries the %s; %s carries the %s.\n",
			subject.Name, card, partner.Name, BirthCard(partner.Birth))
		fmt.Fprintf(&b, "Combined life path resonance: %d.\n",
			(LifePath(subject.Birth)+LifePath(partner.Birth))%9+1)
	case models.ReportFinancial:
		fmt.Fprintf(&b, "Financial Report for %s\n\n", subject.Name)
		fmt.Fprintf(&b, "The %s governs material matters for the %s-born.\n", card, card.Suit)
		fmt.Fprintf(&b, "Life path %d suggests the pace of accumulation.\n", path)
	case models.ReportSingles:
		fmt.Fprintf(&b, "Singles Report for %s\n\n", subject.Name)
		fmt.Fprintf(&b, "The %s draws its complement from the %s suit.\n", card, suits[(path)%4])
	case models.ReportChildrens:
		fmt.Fprintf(&b, "Children's Life Report for %s (age %d)\n\n", subject.Name, subject.Age)
		fmt.Fprintf(&b, "A young %s, beginning life path %d.\n", card, path)
	}
	return b.String()
}

// EstimateTokens approximates the token charge for a body of content.
// Four characters per token is the usual rough rule.
func EstimateTokens(content string) int64 {
	n := int64(len(content)) / 4
	if n < 1 {
		n = 1
	}
	return n
}
