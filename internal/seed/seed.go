// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"devconnect/internal/gravatar"
	"devconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var statuses = []string{
	"Developer", "Junior Developer", "Senior Developer", "Manager",
	"Student or Learning", "Instructor or Teacher", "Intern",
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	profiles, err := createProfiles(db, users, r)
	if err != nil {
		return fmt.Errorf("failed to create profiles: %w", err)
	}
	log.Printf("✓ %d profiles created", len(profiles))

	posts, err := createPosts(db, users, opts.NumPosts, r)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	likes, comments, err := createEngagement(db, users, posts, r)
	if err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Printf("✓ %d likes and %d comments created", likes, comments)

	log.Println("📧 All test users have the password: password123")
	return nil
}

// clearData removes seeded rows. Order matters because of foreign keys.
func clearData(db *gorm.DB) error {
	tables := []string{"comments", "likes", "posts", "experiences", "educations", "profiles", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		email := fmt.Sprintf("%s%d@%s", strings.ToLower(gofakeit.Username()), i, gofakeit.DomainName())
		users = append(users, models.User{
			Name:     name,
			Email:    email,
			Password: string(hash),
			Avatar:   gravatar.URL(email),
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func createProfiles(db *gorm.DB, users []models.User, r *rand.Rand) ([]models.Profile, error) {
	profiles := make([]models.Profile, 0, len(users))
	for i, user := range users {
		// leave roughly one in five users without a profile
		if r.Intn(5) == 0 {
			continue
		}

		profile := models.Profile{
			UserID:         user.ID,
			Handle:         fmt.Sprintf("%s-%d", strings.ToLower(gofakeit.Username()), i),
			Company:        gofakeit.Company(),
			Website:        gofakeit.URL(),
			Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
			Status:         statuses[r.Intn(len(statuses))],
			Bio:            gofakeit.Sentence(12),
			GithubUsername: strings.ToLower(gofakeit.Username()),
			Skills:         randomSkills(r),
		}
		if r.Intn(2) == 0 {
			profile.Social = models.SocialLinks{
				Twitter:  "https://twitter.com/" + profile.GithubUsername,
				Linkedin: "https://linkedin.com/in/" + profile.GithubUsername,
			}
		}
		profile.Experience = randomExperience(r)
		profile.Education = randomEducation(r)

		profiles = append(profiles, profile)
	}
	if len(profiles) == 0 {
		return profiles, nil
	}
	if err := db.Create(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func randomSkills(r *rand.Rand) []string {
	pool := []string{
		"Go", "JavaScript", "TypeScript", "Python", "SQL", "PostgreSQL", "Redis",
		"Docker", "Kubernetes", "React", "Vue", "Node.js", "GraphQL", "AWS", "Git",
	}
	r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:3+r.Intn(5)]
}

func randomExperience(r *rand.Rand) []models.Experience {
	count := r.Intn(3)
	entries := make([]models.Experience, 0, count)
	for i := 0; i < count; i++ {
		from := time.Now().AddDate(-(i + 1), -r.Intn(12), 0)
		entry := models.Experience{
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			Description: gofakeit.Sentence(10),
		}
		if i == 0 && r.Intn(2) == 0 {
			entry.Current = true
		} else {
			to := from.AddDate(0, 6+r.Intn(18), 0)
			entry.To = &to
		}
		entries = append(entries, entry)
	}
	return entries
}

func randomEducation(r *rand.Rand) []models.Education {
	if r.Intn(3) == 0 {
		return nil
	}
	from := time.Now().AddDate(-(4 + r.Intn(10)), 0, 0)
	to := from.AddDate(4, 0, 0)
	return []models.Education{{
		School:       fmt.Sprintf("%s University", gofakeit.City()),
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         from,
		To:           &to,
		Description:  gofakeit.Sentence(8),
	}}
}

func createPosts(db *gorm.DB, users []models.User, count int, r *rand.Rand) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		text := gofakeit.Sentence(6 + r.Intn(20))
		if len(text) > 300 {
			text = text[:300]
		}
		posts = append(posts, models.Post{
			UserID:    author.ID,
			Text:      text,
			Name:      author.Name,
			Avatar:    author.Avatar,
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		})
	}
	if err := db.CreateInBatches(&posts, 100).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func createEngagement(db *gorm.DB, users []models.User, posts []models.Post, r *rand.Rand) (int, int, error) {
	var likes []models.Like
	var comments []models.Comment

	for _, post := range posts {
		// pick distinct likers for each post
		perm := r.Perm(len(users))
		for _, idx := range perm[:r.Intn(min(len(users), 8))] {
			likes = append(likes, models.Like{UserID: users[idx].ID, PostID: post.ID})
		}

		for i := 0; i < r.Intn(4); i++ {
			author := users[r.Intn(len(users))]
			comments = append(comments, models.Comment{
				UserID: author.ID,
				PostID: post.ID,
				Text:   gofakeit.Sentence(4 + r.Intn(12)),
				Name:   author.Name,
				Avatar: author.Avatar,
			})
		}
	}

	if len(likes) > 0 {
		if err := db.CreateInBatches(&likes, 200).Error; err != nil {
			return 0, 0, err
		}
	}
	if len(comments) > 0 {
		if err := db.CreateInBatches(&comments, 200).Error; err != nil {
			return 0, 0, err
		}
	}
	return len(likes), len(comments), nil
}
