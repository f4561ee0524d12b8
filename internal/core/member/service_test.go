// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package member_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/audit"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/core/member"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/apperr"
)

const actorID = "99999999-9999-9999-9999-999999999999"

// fakeRepository is an in-memory member store for service tests.
type fakeRepository struct {
	mu      sync.Mutex
	members map[string]*member.Member
	images  map[string]*member.Image
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		members: make(map[string]*member.Member),
		images:  make(map[string]*member.Image),
	}
}

func (repo *fakeRepository) List(_ context.Context, filter member.Filter, limit, offset int) ([]*member.Member, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var result []*member.Member
	for _, m := range repo.members {
		if filter.Query != "" && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(filter.Query)) {
			continue
		}
		copied := *m
		result = append(result, &copied)
	}
	total := len(result)
	if offset > len(result) {
		return nil, total, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, total, nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*member.Member, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	m, ok := repo.members[id]
	if !ok {
		return nil, apperr.NotFound("Member")
	}
	copied := *m
	return &copied, nil
}

func (repo *fakeRepository) FindBySlug(_ context.Context, slug string) (*member.Member, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, m := range repo.members {
		if m.Slug == slug {
			copied := *m
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Member")
}

func (repo *fakeRepository) Create(_ context.Context, m *member.Member) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, existing := range repo.members {
		if existing.Slug == m.Slug {
			return apperr.Conflict("Slug already in use")
		}
	}
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	stored := *m
	repo.members[m.ID] = &stored
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, m *member.Member) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	existing, ok := repo.members[m.ID]
	if !ok {
		return apperr.NotFound("Member")
	}
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = time.Now()
	stored := *m
	repo.members[m.ID] = &stored
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string) ([]string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.members[id]; !ok {
		return nil, apperr.NotFound("Member")
	}
	delete(repo.members, id)
	var keys []string
	for imageID, image := range repo.images {
		if image.MemberID == id {
			keys = append(keys, image.ObjectKey)
			delete(repo.images, imageID)
		}
	}
	return keys, nil
}

func (repo *fakeRepository) ListImages(_ context.Context, memberID string) ([]*member.Image, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var result []*member.Image
	for _, image := range repo.images {
		if image.MemberID == memberID {
			copied := *image
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (repo *fakeRepository) GetImage(_ context.Context, id string) (*member.Image, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	image, ok := repo.images[id]
	if !ok {
		return nil, apperr.NotFound("Image")
	}
	copied := *image
	return &copied, nil
}

func (repo *fakeRepository) AddImage(_ context.Context, image *member.Image) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	image.CreatedAt = time.Now()
	stored := *image
	repo.images[image.ID] = &stored
	return nil
}

func (repo *fakeRepository) SetPrimaryImage(_ context.Context, memberID, imageID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	target, ok := repo.images[imageID]
	if !ok || target.MemberID != memberID {
		return apperr.NotFound("Image")
	}
	for _, image := range repo.images {
		if image.MemberID == memberID {
			image.IsPrimary = false
		}
	}
	target.IsPrimary = true
	return nil
}

func (repo *fakeRepository) DeleteImage(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.images[id]; !ok {
		return apperr.NotFound("Image")
	}
	delete(repo.images, id)
	return nil
}

func (repo *fakeRepository) CountImages(_ context.Context, memberID string) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	count := 0
	for _, image := range repo.images {
		if image.MemberID == memberID {
			count++
		}
	}
	return count, nil
}

// fakeObjectStore records uploads and deletes in memory.
type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string]bool
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string]bool)}
}

func (store *fakeObjectStore) Upload(_ context.Context, key string, content io.Reader, _ string) error {
	if _, err := io.Copy(io.Discard, content); err != nil {
		return err
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	store.objects[key] = true
	return nil
}

func (store *fakeObjectStore) Delete(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.objects, key)
	return nil
}

func (store *fakeObjectStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://cdn.test/" + key, nil
}

// noopAuditStore discards audit records.
type noopAuditStore struct{}

func (noopAuditStore) Insert(context.Context, *audit.Record) error { return nil }

func newTestService() (*member.Service, *fakeRepository, *fakeObjectStore) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := audit.NewRecorder(noopAuditStore{}, logger)
	repo := newFakeRepository()
	objects := newFakeObjectStore()
	return member.NewService(repo, objects, recorder, logger), repo, objects
}

func intPtr(v int) *int { return &v }

/*
TestService_CreateMember tests identity generation and biographical validation.
*/
func TestService_CreateMember(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_member", func(t *testing.T) {
		service, _, _ := newTestService()

		m := &member.Member{
			Name:      "Hasan Kurpejović",
			BirthYear: intPtr(1921),
			DeathYear: intPtr(1999),
		}
		err := service.CreateMember(ctx, m, actorID)

		require.NoError(t, err)
		assert.NotEmpty(t, m.ID)
		assert.NotEmpty(t, m.Slug)
		assert.Equal(t, actorID, m.CreatedBy)
	})

	t.Run("name_required", func(t *testing.T) {
		service, _, _ := newTestService()

		err := service.CreateMember(ctx, &member.Member{Name: "  "}, actorID)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("year_out_of_range", func(t *testing.T) {
		service, _, _ := newTestService()

		err := service.CreateMember(ctx, &member.Member{
			Name:      "Test",
			BirthYear: intPtr(1200),
		}, actorID)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("death_before_birth", func(t *testing.T) {
		service, _, _ := newTestService()

		err := service.CreateMember(ctx, &member.Member{
			Name:      "Test",
			BirthYear: intPtr(1950),
			DeathYear: intPtr(1940),
		}, actorID)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})
}

/*
TestService_GetMember tests identifier-shape dispatch between id and slug.
*/
func TestService_GetMember(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService()

	m := &member.Member{Name: "Rifat Kurpejović"}
	require.NoError(t, service.CreateMember(ctx, m, actorID))

	byID, err := service.GetMember(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, byID.ID)

	bySlug, err := service.GetMember(ctx, m.Slug)
	require.NoError(t, err)
	assert.Equal(t, m.ID, bySlug.ID)

	_, err = service.GetMember(ctx, "nonexistent-slug")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_DeleteMember tests cascade removal including stored portraits.
*/
func TestService_DeleteMember(t *testing.T) {
	ctx := context.Background()
	service, repo, objects := newTestService()

	m := &member.Member{Name: "Zejna Kurpejović"}
	require.NoError(t, service.CreateMember(ctx, m, actorID))

	image, err := service.AddPortrait(ctx, m.ID, "portrait.jpg", "image/jpeg",
		strings.NewReader("jpegdata"), "Portret", actorID)
	require.NoError(t, err)
	assert.True(t, objects.objects[image.ObjectKey])

	require.NoError(t, service.DeleteMember(ctx, m.ID, actorID))

	_, err = repo.FindByID(ctx, m.ID)
	require.Error(t, err)
	assert.False(t, objects.objects[image.ObjectKey])
}

/*
TestService_Portraits tests upload rules and primary promotion.
*/
func TestService_Portraits(t *testing.T) {
	ctx := context.Background()

	t.Run("first_upload_becomes_primary", func(t *testing.T) {
		service, _, _ := newTestService()
		m := &member.Member{Name: "Ajla Kurpejović"}
		require.NoError(t, service.CreateMember(ctx, m, actorID))

		first, err := service.AddPortrait(ctx, m.ID, "a.png", "image/png",
			strings.NewReader("png"), "", actorID)
		require.NoError(t, err)
		assert.True(t, first.IsPrimary)

		second, err := service.AddPortrait(ctx, m.ID, "b.png", "image/png",
			strings.NewReader("png"), "", actorID)
		require.NoError(t, err)
		assert.False(t, second.IsPrimary)
	})

	t.Run("unsupported_content_type", func(t *testing.T) {
		service, _, _ := newTestService()
		m := &member.Member{Name: "Ajla Kurpejović"}
		require.NoError(t, service.CreateMember(ctx, m, actorID))

		_, err := service.AddPortrait(ctx, m.ID, "doc.pdf", "application/pdf",
			strings.NewReader("pdf"), "", actorID)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("promote_primary", func(t *testing.T) {
		service, _, _ := newTestService()
		m := &member.Member{Name: "Ajla Kurpejović"}
		require.NoError(t, service.CreateMember(ctx, m, actorID))

		_, err := service.AddPortrait(ctx, m.ID, "a.png", "image/png",
			strings.NewReader("png"), "", actorID)
		require.NoError(t, err)
		second, err := service.AddPortrait(ctx, m.ID, "b.png", "image/png",
			strings.NewReader("png"), "", actorID)
		require.NoError(t, err)

		require.NoError(t, service.SetPrimaryPortrait(ctx, m.ID, second.ID, actorID))

		portraits, err := service.ListPortraits(ctx, m.ID)
		require.NoError(t, err)
		for _, portrait := range portraits {
			assert.Equal(t, portrait.ID == second.ID, portrait.IsPrimary)
		}
	})
}
