package sql

import (
	"context"
	"math"
	"testing"
	"time"

	"recruit/internal/access"
	"recruit/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *GormRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&entity.DbUser{}, &entity.DbResume{}, &entity.DbMessage{}))
	return NewGormRepository(db)
}

func createUser(t *testing.T, repo *GormRepository, email, name, role string) *entity.DbUser {
	t.Helper()
	user := &entity.DbUser{Email: email, Name: name, Role: role, PasswordHash: "x", IsActive: true}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func createResume(t *testing.T, repo *GormRepository, owner uint, name, position string) *entity.DbResume {
	t.Helper()
	resume := &entity.DbResume{
		UserID:     owner,
		Name:       name,
		Email:      name + "@example.com",
		Phone:      "13800000000",
		Position:   position,
		ResumeLink: "https://example.com/" + name + ".pdf",
		Intro:      "hello",
	}
	require.NoError(t, repo.CreateResume(context.Background(), resume))
	return resume
}

func TestNilRepository(t *testing.T) {
	var repo *GormRepository
	_, err := repo.CountUsers(context.Background())
	assert.Error(t, err)
	_, _, err = repo.ListResumes(context.Background(), access.ScopedQuery{})
	assert.Error(t, err)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	alice := createUser(t, repo, " Alice@Example.com ", "Alice", entity.UserRoleUser)
	assert.Equal(t, "alice@example.com", alice.Email)

	found, err := repo.GetUserByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	dup := &entity.DbUser{Email: "alice@example.com", PasswordHash: "x", Role: entity.UserRoleUser}
	assert.ErrorIs(t, repo.CreateUser(ctx, dup), gorm.ErrDuplicatedKey)

	name := "Alice W."
	inactive := false
	require.NoError(t, repo.UpdateUser(ctx, alice.ID, entity.UserUpdates{Name: &name, IsActive: &inactive}))
	found, err = repo.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice W.", found.Name)
	assert.False(t, found.IsActive)

	assert.ErrorIs(t, repo.UpdateUser(ctx, 999, entity.UserUpdates{Name: &name}), gorm.ErrRecordNotFound)

	createUser(t, repo, "bob@example.com", "Bob", entity.UserRoleUser)
	users, total, err := repo.ListUsers(ctx, access.ScopedQuery{Search: "bob", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "Bob", users[0].Name)

	require.NoError(t, repo.DeleteUser(ctx, alice.ID))
	assert.ErrorIs(t, repo.DeleteUser(ctx, alice.ID), gorm.ErrRecordNotFound)

	count, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestListResumesScopeAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	alice := createUser(t, repo, "alice@example.com", "Alice", entity.UserRoleUser)
	bob := createUser(t, repo, "bob@example.com", "Bob", entity.UserRoleUser)

	for i := 0; i < 3; i++ {
		createResume(t, repo, alice.ID, "alice", "Engineer")
	}
	createResume(t, repo, bob.ID, "bob", "Designer")

	resumes, total, err := repo.ListResumes(ctx, access.ScopedQuery{OwnerID: access.Owner(alice.ID), Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, resumes, 2)
	for _, item := range resumes {
		assert.Equal(t, alice.ID, item.UserID)
		require.NotNil(t, item.User)
		assert.Equal(t, "Alice", item.User.Name)
	}

	resumes, total, err = repo.ListResumes(ctx, access.ScopedQuery{OwnerID: access.Owner(alice.ID), Page: 2, Limit: 2, Skip: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, resumes, 1)

	// newest first by default
	all, total, err := repo.ListResumes(ctx, access.ScopedQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Equal(t, bob.ID, all[0].UserID)

	oldest, _, err := repo.ListResumes(ctx, access.ScopedQuery{Sort: access.SortOldest, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, oldest[0].UserID)

	filtered, total, err := repo.ListResumes(ctx, access.ScopedQuery{Position: "Designer", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "bob", filtered[0].Name)

	searched, total, err := repo.ListResumes(ctx, access.ScopedQuery{Search: "ENGIN", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, searched, 3)

	none, total, err := repo.ListResumes(ctx, access.ScopedQuery{OwnerID: access.Owner(0), Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, none)

	unpaged, _, err := repo.ListResumes(ctx, access.ScopedQuery{})
	require.NoError(t, err)
	assert.Len(t, unpaged, 4)
}

func resumeNames(resumes []entity.DbResume) []string {
	names := make([]string, 0, len(resumes))
	for _, item := range resumes {
		names = append(names, item.Name)
	}
	return names
}

func TestListResumesSortedByName(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	alice := createUser(t, repo, "alice@example.com", "Alice", entity.UserRoleUser)
	for _, name := range []string{"张三", "李四", "Zoe", "王五", "Émile"} {
		createResume(t, repo, alice.ID, name, "Engineer")
	}

	all, total, err := repo.ListResumes(ctx, access.ScopedQuery{Sort: access.SortName, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Equal(t, []string{"Émile", "Zoe", "李四", "王五", "张三"}, resumeNames(all))
	for _, item := range all {
		require.NotNil(t, item.User)
	}

	page2, total, err := repo.ListResumes(ctx, access.ScopedQuery{Sort: access.SortName, Page: 2, Limit: 2, Skip: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Equal(t, []string{"李四", "王五"}, resumeNames(page2))

	last, _, err := repo.ListResumes(ctx, access.ScopedQuery{Sort: access.SortName, Page: 3, Limit: 2, Skip: 4})
	require.NoError(t, err)
	assert.Equal(t, []string{"张三"}, resumeNames(last))

	// 过滤条件与名称排序同时生效
	searched, total, err := repo.ListResumes(ctx, access.ScopedQuery{Sort: access.SortName, Search: "zo", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, []string{"Zoe"}, resumeNames(searched))

	unpaged, _, err := repo.ListResumes(ctx, access.ScopedQuery{Sort: access.SortName})
	require.NoError(t, err)
	assert.Equal(t, resumeNames(all), resumeNames(unpaged))
}

func TestListPastLastPage(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	alice := createUser(t, repo, "alice@example.com", "Alice", entity.UserRoleUser)
	createResume(t, repo, alice.ID, "alice", "Engineer")

	for _, sortBy := range []access.SortOrder{access.SortNewest, access.SortName} {
		resumes, total, err := repo.ListResumes(ctx, access.ScopedQuery{Sort: sortBy, Page: math.MaxInt, Limit: 20, Skip: math.MaxInt})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Empty(t, resumes, sortBy)
	}
}

func TestListUsersAndMessagesSortedByName(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	createUser(t, repo, "zhang@example.com", "张三", entity.UserRoleUser)
	createUser(t, repo, "bob@example.com", "bob", entity.UserRoleUser)
	createUser(t, repo, "li@example.com", "李四", entity.UserRoleUser)
	createUser(t, repo, "alice@example.com", "Alice", entity.UserRoleUser)

	users, _, err := repo.ListUsers(ctx, access.ScopedQuery{Sort: access.SortName, Page: 1, Limit: 20})
	require.NoError(t, err)
	names := make([]string, 0, len(users))
	for _, user := range users {
		names = append(names, user.Name)
	}
	assert.Equal(t, []string{"Alice", "bob", "李四", "张三"}, names)

	for _, name := range []string{"王五", "Guest", "陈六"} {
		require.NoError(t, repo.CreateMessage(ctx, &entity.DbMessage{Name: name, Message: "hi"}))
	}
	messages, _, err := repo.ListMessages(ctx, access.ScopedQuery{Sort: access.SortName, Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "Guest", messages[0].Name)
	assert.Equal(t, "陈六", messages[1].Name)
}

func TestUpdateAndDeleteResume(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	alice := createUser(t, repo, "alice@example.com", "Alice", entity.UserRoleUser)
	resume := createResume(t, repo, alice.ID, "alice", "Engineer")
	assert.Equal(t, entity.ResumeStatusPending, resume.Status)

	status := entity.ResumeStatusAccepted
	notes := "strong candidate"
	require.NoError(t, repo.UpdateResume(ctx, resume.ID, entity.ResumeUpdates{Status: &status, Notes: &notes}))

	loaded, err := repo.GetResume(ctx, resume.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ResumeStatusAccepted, loaded.Status)
	assert.Equal(t, "strong candidate", loaded.Notes)
	assert.Equal(t, alice.ID, loaded.UserID)

	assert.ErrorIs(t, repo.UpdateResume(ctx, 999, entity.ResumeUpdates{Status: &status}), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.UpdateResume(ctx, 999, entity.ResumeUpdates{}), gorm.ErrRecordNotFound)

	require.NoError(t, repo.DeleteResume(ctx, resume.ID))
	assert.ErrorIs(t, repo.DeleteResume(ctx, resume.ID), gorm.ErrRecordNotFound)
	_, err = repo.GetResume(ctx, resume.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestResumeStats(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	alice := createUser(t, repo, "alice@example.com", "Alice", entity.UserRoleUser)

	old := &entity.DbResume{
		UserID: alice.ID, Name: "old", Email: "old@example.com", Phone: "1",
		Position: "Designer", ResumeLink: "l", Intro: "i",
		CreatedAt: time.Now().Add(-72 * time.Hour),
	}
	require.NoError(t, repo.CreateResume(ctx, old))
	createResume(t, repo, alice.ID, "a", "Engineer")
	createResume(t, repo, alice.ID, "b", "Engineer")
	third := createResume(t, repo, alice.ID, "c", "Analyst")

	status := entity.ResumeStatusRejected
	require.NoError(t, repo.UpdateResume(ctx, third.ID, entity.ResumeUpdates{Status: &status}))

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	stats, err := repo.ResumeStats(ctx, startOfDay)
	require.NoError(t, err)

	assert.EqualValues(t, 4, stats.Total)
	assert.EqualValues(t, 3, stats.StatusCounts.Pending)
	assert.EqualValues(t, 1, stats.StatusCounts.Rejected)
	assert.Zero(t, stats.StatusCounts.Accepted)
	assert.EqualValues(t, 3, stats.TodayCount)
	assert.Equal(t, []entity.PositionCount{
		{Position: "Engineer", Count: 2},
		{Position: "Analyst", Count: 1},
		{Position: "Designer", Count: 1},
	}, stats.Positions)
}

func TestResumeStatsPositionTieBreak(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	alice := createUser(t, repo, "alice@example.com", "Alice", entity.UserRoleUser)

	createResume(t, repo, alice.ID, "a", "运营")
	createResume(t, repo, alice.ID, "b", "运营")
	createResume(t, repo, alice.ID, "c", "产品经理")
	createResume(t, repo, alice.ID, "d", "产品经理")
	createResume(t, repo, alice.ID, "e", "设计")
	createResume(t, repo, alice.ID, "f", "Backend")

	stats, err := repo.ResumeStats(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []entity.PositionCount{
		{Position: "产品经理", Count: 2},
		{Position: "运营", Count: 2},
		{Position: "Backend", Count: 1},
		{Position: "设计", Count: 1},
	}, stats.Positions)
}

func TestMessages(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	alice := createUser(t, repo, "alice@example.com", "Alice", entity.UserRoleUser)

	anonymous := &entity.DbMessage{Name: "Guest", Message: "Is the office remote friendly?"}
	require.NoError(t, repo.CreateMessage(ctx, anonymous))
	assert.Nil(t, anonymous.UserID)
	assert.False(t, anonymous.IsRead)

	own := &entity.DbMessage{UserID: access.Owner(alice.ID), Name: "Alice", Message: "When will I hear back?", Email: "alice@example.com"}
	require.NoError(t, repo.CreateMessage(ctx, own))

	messages, total, err := repo.ListMessages(ctx, access.ScopedQuery{OwnerID: access.Owner(alice.ID), Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, messages, 1)
	require.NotNil(t, messages[0].User)
	assert.Equal(t, "alice@example.com", messages[0].User.Email)

	searched, total, err := repo.ListMessages(ctx, access.ScopedQuery{Search: "remote", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Nil(t, searched[0].User)

	read := true
	reply := "Yes"
	require.NoError(t, repo.UpdateMessage(ctx, anonymous.ID, entity.MessageUpdates{IsRead: &read, Reply: &reply}))
	loaded, err := repo.GetMessage(ctx, anonymous.ID)
	require.NoError(t, err)
	assert.True(t, loaded.IsRead)
	assert.Equal(t, "Yes", loaded.Reply)

	require.NoError(t, repo.DeleteMessage(ctx, anonymous.ID))
	assert.ErrorIs(t, repo.DeleteMessage(ctx, anonymous.ID), gorm.ErrRecordNotFound)

	count, err := repo.CountMessages(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
