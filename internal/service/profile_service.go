package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"sanaalens/internal/models"
	"sanaalens/internal/repository"
	"sanaalens/internal/validation"
)

// Profile is the reader-facing view of an account: the stored fields plus
// the derived avatar initials and bookmarked post IDs.
type Profile struct {
	User     models.User `json:"user"`
	Initials string      `json:"initials"`
}

// ProfileService implements account profile reads and writes.
type ProfileService struct {
	users      repository.UserRepository
	engagement repository.EngagementRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(users repository.UserRepository, engagement repository.EngagementRepository) *ProfileService {
	return &ProfileService{users: users, engagement: engagement}
}

// GetProfile assembles a reader's profile: account fields, bookmark post
// IDs and display initials.
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	bookmarks, err := s.engagement.ListBookmarkedPostIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Bookmarks = bookmarks

	return &Profile{
		User:     *user,
		Initials: Initials(displayNameOrUsername(user)),
	}, nil
}

// ProfileUpdate carries the editable profile fields. All fields are
// replaced as a unit, matching how the profile editor submits the form.
type ProfileUpdate struct {
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	Bio         string `json:"bio"`
}

// ReplaceProfile overwrites the editable profile fields. Only the display
// columns are written; credentials are untouchable through this path.
func (s *ProfileService) ReplaceProfile(ctx context.Context, userID uint, update ProfileUpdate) (*Profile, error) {
	err := s.users.UpdateProfile(ctx, userID,
		strings.TrimSpace(update.DisplayName),
		strings.TrimSpace(update.Avatar),
		strings.TrimSpace(update.Bio),
	)
	if err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// ChangePassword verifies the current password before storing a new one.
// The stored hash is read fresh from the database; cached profile copies
// never carry credentials.
func (s *ProfileService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	hash, err := s.users.PasswordHash(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(current)) != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}
	if err := validation.ValidatePassword(next); err != nil {
		return models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	return s.users.UpdatePassword(ctx, userID, string(hashed))
}

// DeleteAccount removes the reader's account.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.users.Delete(ctx, userID)
}

// Initials derives the avatar fallback letters from a display name: the
// first letters of the first two words, or the first two characters of a
// single word, uppercased. A blank name yields "U".
func Initials(name string) string {
	words := strings.Fields(strings.TrimSpace(name))
	switch {
	case len(words) >= 2:
		return strings.ToUpper(firstRune(words[0]) + firstRune(words[1]))
	case len(words) == 1:
		runes := []rune(words[0])
		if len(runes) >= 2 {
			return strings.ToUpper(string(runes[:2]))
		}
		return strings.ToUpper(string(runes))
	default:
		return "U"
	}
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

func displayNameOrUsername(user *models.User) string {
	if user.DisplayName != "" {
		return user.DisplayName
	}
	return user.Username
}
