package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	t.Run("splits on terminal punctuation", func(t *testing.T) {
		got := SplitSentences("Hi there. Bye! Ok?")
		assert.Equal(t, []string{"Hi there", "Bye", "Ok"}, got)
	})

	t.Run("keeps unterminated tail", func(t *testing.T) {
		got := SplitSentences("Done. trailing words")
		assert.Equal(t, []string{"Done", "trailing words"}, got)
	})

	t.Run("collapses repeated terminators", func(t *testing.T) {
		got := SplitSentences("Wait... what?! Ok.")
		assert.Equal(t, []string{"Wait", "what", "Ok"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SplitSentences(""))
		assert.Empty(t, SplitSentences("  \n "))
		assert.Empty(t, SplitSentences("..."))
	})
}

func TestSentences(t *testing.T) {
	t.Run("keeps terminators", func(t *testing.T) {
		got := Sentences("Hi there. Bye! Ok?")
		assert.Equal(t, []string{"Hi there.", "Bye!", "Ok?"}, got)
	})

	t.Run("no terminator falls back to whole text", func(t *testing.T) {
		got := Sentences("just some words")
		assert.Equal(t, []string{"just some words"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Sentences("   "))
	})
}

func TestTokenize(t *testing.T) {
	got := Tokenize("It's the Cat's hat, really!")
	assert.Equal(t, []string{"it's", "the", "cat's", "hat", "really"}, got)
}

func TestTokenSet(t *testing.T) {
	got := TokenSet("word word other")
	assert.Len(t, got, 2)
	assert.Contains(t, got, "word")
	assert.Contains(t, got, "other")
}

func TestIsStopword(t *testing.T) {
	assert.True(t, IsStopword("the"))
	assert.True(t, IsStopword("and"))
	assert.False(t, IsStopword("retrieval"))
}
