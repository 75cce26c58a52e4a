package service

import (
	"errors" // Error classification
	"fmt"    // Error wrapping
	"time"   // Creation dates

	"expense_sharing/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// GroupCreation is the transient payload for creating a group
type GroupCreation struct {
	Name         string    `json:"name" binding:"required"`          // Group name
	Description  string    `json:"description"`                      // Free-form description
	CreatedDate  time.Time `json:"created_date"`                     // Creation date supplied by the caller
	MemberEmails []string  `json:"member_emails" binding:"required"` // Emails of the initial members
}

// GroupService owns group and membership lifecycle
type GroupService struct {
	db *gorm.DB // Ledger store
}

// NewGroupService creates a GroupService on top of the given database
func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

// Create resolves every member email to an existing user and creates the group
// together with its memberships in one transaction. A single unresolvable
// email fails the whole call and persists nothing.
func (s *GroupService) Create(model *GroupCreation) (*domain.Group, error) {
	if len(model.MemberEmails) == 0 {
		return nil, fmt.Errorf("%w: at least one member email is required", ErrValidation)
	}
	var group domain.Group
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Resolve all member emails before creating anything
		members := make([]domain.User, 0, len(model.MemberEmails))
		for _, email := range model.MemberEmails {
			var user domain.User
			if err := tx.First(&user, "email = ?", email).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: no user with email %s", ErrValidation, email)
				}
				return err
			}
			members = append(members, user)
		}
		// Create the group itself
		group = domain.Group{
			Name:        model.Name,        // Group name
			Description: model.Description, // Description
			CreatedDate: model.CreatedDate, // Caller-supplied creation date
		}
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		// Create one membership per resolved user
		for _, member := range members {
			m := domain.UserGroup{UserID: member.ID, GroupID: group.ID}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Return the group with its memberships attached
	if err := s.db.Preload("Members").First(&group, "id = ?", group.ID).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// GetAll returns every group with its memberships
func (s *GroupService) GetAll() ([]domain.Group, error) {
	var groups []domain.Group
	if err := s.db.Preload("Members").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// GetByID returns one group, or (nil, nil) when the id is unknown;
// the caller maps the absent case to 404
func (s *GroupService) GetByID(id string) (*domain.Group, error) {
	var group domain.Group
	if err := s.db.Preload("Members.User").First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Absent indicator, not an error
		}
		return nil, err
	}
	return &group, nil
}

// GetByUserID returns every group the user holds a membership in
func (s *GroupService) GetByUserID(userID string) ([]domain.Group, error) {
	var groups []domain.Group
	if err := s.db.Preload("Members").
		Joins("JOIN user_groups ON user_groups.group_id = groups.id").
		Where("user_groups.user_id = ?", userID).
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// Delete removes a group together with its memberships and all of its
// expenses in one transaction, so no orphan expenses survive
func (s *GroupService) Delete(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var group domain.Group
		if err := tx.First(&group, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: group %s", ErrNotFound, id)
			}
			return err
		}
		// Cascade: expenses first, then memberships, then the group
		if err := tx.Where("group_id = ?", id).Delete(&domain.Expense{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&domain.UserGroup{}).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
	if err != nil {
		return err
	}
	// Log the cascade delete with context
	logrus.WithFields(logrus.Fields{
		"group_id": id,             // Deleted group
		"type":     "delete_group", // Operation type
	}).Info("Group deleted")
	return nil
}
