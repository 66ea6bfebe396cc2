package classify

import (
	"testing"

	"github.com/briefcast/briefcast/app/model"
	"github.com/briefcast/briefcast/app/tuning"
)

func newTestClassifier() *Classifier {
	return NewClassifier(tuning.Defaults().Uplifting)
}

func TestIsUplifting_PositiveKeyword(t *testing.T) {
	c := newTestClassifier()

	a := model.Article{
		Title:       "Local volunteers restore historic theater",
		Description: "The community came together over the weekend",
	}
	if !c.IsUplifting(a) {
		t.Error("Article with positive keywords should be accepted")
	}
}

func TestIsUplifting_NegativeKeywordRejects(t *testing.T) {
	c := newTestClassifier()

	a := model.Article{
		Title:       "Storm disaster strikes coastal town",
		Description: "Damage is widespread",
	}
	if c.IsUplifting(a) {
		t.Error("Article with negative keywords should be rejected")
	}
}

func TestIsUplifting_NegativeTakesPrecedence(t *testing.T) {
	c := newTestClassifier()

	// Both a positive and a negative keyword present: negative wins.
	a := model.Article{
		Title:       "Community fundraiser after deadly crash",
		Description: "Neighbors donate to the victims",
	}
	if c.IsUplifting(a) {
		t.Error("Negative keywords must take precedence over positive ones")
	}
}

func TestIsUplifting_NeutralRejected(t *testing.T) {
	c := newTestClassifier()

	a := model.Article{
		Title:       "City council meets on Tuesday",
		Description: "The agenda covers zoning",
	}
	if c.IsUplifting(a) {
		t.Error("Article with neither list matched should be rejected")
	}
}

func TestRun(t *testing.T) {
	c := newTestClassifier()

	articles := []model.Article{
		{Title: "Scientists announce breakthrough in battery research", URL: "u1"},
		{Title: "Factory layoffs announced", URL: "u2"},
		{Title: "Weather stays mild", URL: "u3"},
	}

	kept := c.Run(articles)

	if len(kept) != 1 {
		t.Fatalf("Expected 1 uplifting article, got %d", len(kept))
	}
	if kept[0].URL != "u1" {
		t.Errorf("Expected the breakthrough story, got %s", kept[0].URL)
	}
}
