package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bouncecure/internal/domain"
	"bouncecure/internal/service"
	"bouncecure/internal/storage"
)

func sampleTemplate(id, name, category string) domain.Template {
	now := time.Now()
	return domain.Template{
		ID:       id,
		Name:     name,
		Category: category,
		Content: []domain.TemplateItem{
			{Type: "text", Value: "Hi", Style: map[string]any{"left": 0.0, "top": 0.0, "width": 100.0, "height": 20.0}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestTemplateService_AddListGet(t *testing.T) {
	ctx := context.Background()
	emitter := &service.MockEmitter{}
	svc := service.NewTemplateService(storage.NewMemoryStore(), emitter)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, svc.Add(ctx, sampleTemplate("t1", "Welcome", "Custom")))
	require.NoError(t, svc.Add(ctx, sampleTemplate("t2", "Sale", "Promo")))

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "t1", list[0].ID)

	got, err := svc.Get(ctx, "t2")
	require.NoError(t, err)
	assert.Equal(t, "Sale", got.Name)

	_, err = svc.Get(ctx, "t3")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	promo, err := svc.ListByCategory(ctx, "promo")
	require.NoError(t, err)
	require.Len(t, promo, 1)
	assert.Equal(t, "t2", promo[0].ID)

	ids, err := svc.SavedIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, ids)
	assert.Len(t, emitter.Named(service.EventTemplatesChanged), 2)
}

func TestTemplateService_RenameDelete(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTemplateService(storage.NewMemoryStore(), &service.MockEmitter{})
	require.NoError(t, svc.Add(ctx, sampleTemplate("t1", "Welcome", "Custom")))

	require.Error(t, svc.Rename(ctx, "t1", " "))
	require.NoError(t, svc.Rename(ctx, "t1", "Hello"))
	got, err := svc.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Name)
	assert.ErrorIs(t, svc.Rename(ctx, "zz", "x"), domain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, "zz"), "unknown ids are a no-op")
	require.NoError(t, svc.Delete(ctx, "t1"))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	ids, err := svc.SavedIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTemplateService_ToggleSaved(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTemplateService(storage.NewMemoryStore(), &service.MockEmitter{})

	saved, err := svc.ToggleSaved(ctx, "builtin-3")
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = svc.ToggleSaved(ctx, "builtin-3")
	require.NoError(t, err)
	assert.False(t, saved)

	ids, err := svc.SavedIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
