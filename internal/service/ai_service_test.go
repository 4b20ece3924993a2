package service

import (
	"context"
	"testing"

	"spryte/internal/contract"
	"spryte/internal/infrastructure/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformUsesActorProvider(t *testing.T) {
	var requested string
	factory := func(name string) (ai.Provider, error) {
		requested = name
		return &stubProvider{completion: "rewritten"}, nil
	}
	svc := NewAIService(factory, newTestValidator())

	user := testUser(1)
	user.Settings.AIProvider = "anthropic"

	resp, apierr := svc.Transform(context.Background(), user, &contract.TransformRequest{
		Text:   "some text",
		Action: "rewrite",
	})
	require.Nil(t, apierr)
	assert.Equal(t, "anthropic", requested)
	assert.Equal(t, "rewritten", resp.Text)
	assert.Equal(t, "rewrite", resp.Action)
}

func TestTransformProviderResolutionIsClientError(t *testing.T) {
	svc := NewAIService(stubFactory(nil, ai.ErrMissingAPIKey), newTestValidator())

	_, apierr := svc.Transform(context.Background(), testUser(1), &contract.TransformRequest{
		Text:   "some text",
		Action: "rewrite",
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}

func TestTransformProviderFailureIsServerError(t *testing.T) {
	svc := NewAIService(stubFactory(&stubProvider{err: assert.AnError}, nil), newTestValidator())

	_, apierr := svc.Transform(context.Background(), testUser(1), &contract.TransformRequest{
		Text:   "some text",
		Action: "rewrite",
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 500, apierr.Code())
}

func TestTransformValidatesInput(t *testing.T) {
	svc := NewAIService(stubFactory(&stubProvider{}, nil), newTestValidator())

	_, apierr := svc.Transform(context.Background(), testUser(1), &contract.TransformRequest{
		Text:   "   ",
		Action: "rewrite",
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}

func TestGetActionsMirrorsCatalog(t *testing.T) {
	svc := NewAIService(stubFactory(&stubProvider{}, nil), newTestValidator())

	actions := svc.GetActions()
	require.NotEmpty(t, actions)

	ids := map[string]bool{}
	for _, a := range actions {
		ids[a.ID] = true
		assert.NotEmpty(t, a.Name)
		assert.NotEmpty(t, a.Description)
	}
	assert.True(t, ids["rewrite"])
	assert.True(t, ids["summarize"])
	assert.True(t, ids["insights"])
}
