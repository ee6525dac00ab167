package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

// Password is the password of every user made by CreateUser
const Password = "password123"

func init() {
	auth.BcryptCost = bcrypt.MinCost
}

// CreateUser stores an identity and its profile with the given global role.
func CreateUser(t *testing.T, repos *repositories.Repositories, email string, role models.Role) *models.Profile {
	t.Helper()
	ctx := context.Background()

	hash, err := auth.HashPassword(Password)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	user := &models.AuthUser{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Provider:     models.ProviderEmail,
		Metadata:     models.UserMetadata{FullName: "User " + email, Role: role},
	}
	if err := repos.AuthUsers.Create(ctx, user); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	profile := user.ProfileFromMetadata()
	if err := repos.Profiles.Insert(ctx, profile); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return profile
}

// CreateClub stores a club led by lead, approved or pending.
func CreateClub(t *testing.T, repos *repositories.Repositories, name string, lead *models.Profile, approved bool) *models.Club {
	t.Helper()
	ctx := context.Background()

	club := &models.Club{Name: name, Description: name + " description"}
	if err := repos.Clubs.Create(ctx, club); err != nil {
		t.Fatalf("CreateClub() failed: %v", err)
	}
	if lead != nil {
		AddMember(t, repos, club, lead, models.MemberRoleLead)
	}
	if approved {
		if err := repos.Clubs.Approve(ctx, club.ID); err != nil {
			t.Fatalf("CreateClub() failed: %v", err)
		}
	}
	got, err := repos.Clubs.GetByID(ctx, club.ID)
	if err != nil {
		t.Fatalf("CreateClub() failed: %v", err)
	}
	return got
}

// AddMember stores a membership
func AddMember(t *testing.T, repos *repositories.Repositories, club *models.Club, user *models.Profile, role models.MemberRole) {
	t.Helper()
	err := repos.Members.Add(context.Background(), &models.ClubMembership{ClubID: club.ID, UserID: user.ID, Role: role})
	if err != nil {
		t.Fatalf("AddMember() failed: %v", err)
	}
}

// CreateEvent stores an event of club with the given status, starting in
// from (negative for past events).
func CreateEvent(t *testing.T, repos *repositories.Repositories, club *models.Club, title string, status models.EventStatus, from time.Duration) *models.Event {
	t.Helper()
	event := &models.Event{
		ClubID:    club.ID,
		Title:     title,
		EventDate: time.Now().Add(from).UTC().Truncate(time.Second),
		Location:  "Main hall",
		Status:    status,
	}
	if err := repos.Events.Create(context.Background(), event); err != nil {
		t.Fatalf("CreateEvent() failed: %v", err)
	}
	return event
}
