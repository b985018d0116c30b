package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextValues(t *testing.T) {
	ctx := WithDeck(context.Background(), "decks/intro.yaml")
	ctx = WithRoute(ctx, "/slide/2")
	ctx = WithSlide(ctx, "agenda")

	assert.Equal(t, "decks/intro.yaml", GetDeck(ctx))
	assert.Equal(t, "/slide/2", GetRoute(ctx))
	assert.Equal(t, "agenda", GetSlide(ctx))
}

func TestContextValues_NotPresent(t *testing.T) {
	assert.Empty(t, GetDeck(context.Background()))
	assert.Empty(t, GetRoute(context.Background()))
	assert.Empty(t, GetSlide(context.Background()))
}
