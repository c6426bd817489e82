package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cutmatch-go/internal/config"
	"cutmatch-go/internal/model"
	"cutmatch-go/internal/repository"
	"cutmatch-go/pkg/logger"
	"cutmatch-go/pkg/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testConfigYAML = `
app:
  name: cutmatch-go-test
  version: "1.0.0"
  mode: test
  port: 8000
database:
  host: localhost
  port: 5432
  user: test
  password: test
  dbname: test
  sslmode: disable
redis:
  host: localhost
  port: 6379
  db: 1
minio:
  endpoint: localhost:9000
  access_key: test
  secret_key: test
  use_ssl: false
  buckets:
    - post-images
    - avatars
kafka:
  brokers:
    - localhost:9092
  topics:
    review_events: cutmatch.review.events
elasticsearch:
  hosts:
    - localhost:9200
  index:
    hairstyles: hairstyles-test
jwt:
  secret: test-secret-key-for-unit-tests
  expire_hours: 24
log:
  level: error
  format: console
  output: stdout
`

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cutmatch-test")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(testConfigYAML), 0644); err != nil {
		panic(err)
	}
	if _, err := config.Load(configPath); err != nil {
		panic(err)
	}
	if err := logger.Init("error", "console", "stdout", ""); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

// newTestDB 每个测试用独立的内存 SQLite
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.PostLike{},
		&model.Comment{},
		&model.Hairstyle{},
		&model.Review{},
		&model.Favorite{},
		&model.Relation{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, email, role string) *model.User {
	t.Helper()

	hashed, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := &model.User{
		UserName: username,
		Email:    email,
		Password: hashed,
		UserRole: role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, authorID int64, text string) *model.Post {
	t.Helper()

	post := &model.Post{
		AuthorID: authorID,
		Text:     text,
		ImageURL: "http://localhost:9000/post-images/test.jpg",
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func seedHairstyle(t *testing.T, db *gorm.DB, name, gender string) *model.Hairstyle {
	t.Helper()

	hairstyle := &model.Hairstyle{
		Name:               name,
		Description:        name + " description",
		Gender:             gender,
		Tags:               []string{"short", "clean"},
		SuitableFaceShapes: []string{"oval"},
		ImageURLs:          []string{"http://localhost:9000/post-images/" + name + ".jpg"},
	}
	require.NoError(t, db.Create(hairstyle).Error)
	return hairstyle
}

func newCommentService(db *gorm.DB) *CommentService {
	return NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewPostRepository(db),
	)
}

func newPostService(db *gorm.DB) *PostService {
	return NewPostService(
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
		repository.NewHairstyleRepository(db),
		repository.NewRelationRepository(db),
	)
}

func newHairstyleService(db *gorm.DB) *HairstyleService {
	return NewHairstyleService(
		repository.NewHairstyleRepository(db),
		repository.NewFavoriteRepository(db),
	)
}

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewHairstyleRepository(db),
		newHairstyleService(db),
	)
}
