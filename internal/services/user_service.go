package services

import (
	"context"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/repositories"
	"gorm.io/gorm"
)

// UserService is the admin view over accounts.
type UserService struct {
	db       *gorm.DB
	users    *repositories.UserRepository
	activity *ActivityLogService
}

func NewUserService(db *gorm.DB, activity *ActivityLogService) *UserService {
	return &UserService{
		db:       db,
		users:    repositories.NewUserRepository(db),
		activity: activity,
	}
}

func (s *UserService) FindAll(ctx context.Context, query *models.UserListQuery) ([]models.User, models.Pagination, error) {
	q := s.users.Query(ctx)
	if query.Search != "" {
		cond, args := containsAny(query.Search, "name", "email")
		q = q.Where(cond, args...)
	}
	if query.Role != "" {
		q = q.Where("role = ?", query.Role)
	}
	if query.IsActive != nil {
		q = q.Where("is_active = ?", *query.IsActive)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, models.Pagination{}, apperr.FromDB(err)
	}
	pagination := models.NewPagination(query.Page, query.Limit, total)

	var users []models.User
	err := q.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(query.Limit).
		Find(&users).Error
	if err != nil {
		return nil, models.Pagination{}, apperr.FromDB(err)
	}

	if err := s.attachCounts(ctx, users); err != nil {
		return nil, models.Pagination{}, apperr.FromDB(err)
	}
	return users, pagination, nil
}

func (s *UserService) attachCounts(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]string, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}

	favorites, err := s.countByUser(ctx, &models.Favorite{}, ids)
	if err != nil {
		return err
	}
	activities, err := s.countByUser(ctx, &models.ActivityLog{}, ids)
	if err != nil {
		return err
	}

	for i := range users {
		users[i].FavoriteCount = favorites[users[i].ID]
		users[i].ActivityCount = activities[users[i].ID]
	}
	return nil
}

func (s *UserService) countByUser(ctx context.Context, model interface{}, ids []string) (map[string]int64, error) {
	var rows []struct {
		UserID string
		Total  int64
	}
	err := s.db.WithContext(ctx).Model(model).
		Select("user_id, COUNT(*) AS total").
		Where("user_id IN ?", ids).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Total
	}
	return counts, nil
}

// FindByID returns the user with the 5 latest favorites and 10 latest
// activity entries.
func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User not found")
	}

	db := s.db.WithContext(ctx)
	err = db.Preload("Quote").
		Where("user_id = ?", id).
		Order("created_at DESC").
		Limit(5).
		Find(&user.Favorites).Error
	if err != nil {
		return nil, apperr.FromDB(err)
	}

	err = db.Where("user_id = ?", id).
		Order("created_at DESC").
		Limit(10).
		Find(&user.Activities).Error
	if err != nil {
		return nil, apperr.FromDB(err)
	}

	counted := []models.User{*user}
	if err := s.attachCounts(ctx, counted); err != nil {
		return nil, apperr.FromDB(err)
	}
	user.FavoriteCount = counted[0].FavoriteCount
	user.ActivityCount = counted[0].ActivityCount
	return user, nil
}

func (s *UserService) UpdateStatus(ctx context.Context, actor Actor, id string, isActive bool) (*models.User, error) {
	if id == actor.UserID && !isActive {
		return nil, apperr.BadRequest("You cannot deactivate your own account")
	}

	affected, err := s.users.Updates(ctx, id, map[string]interface{}{"is_active": isActive})
	if err != nil {
		return nil, apperr.FromDB(err)
	}
	if affected == 0 {
		return nil, apperr.NotFound("User not found")
	}

	s.activity.Log(actor, models.ActionStatusChange, models.EntityUser, id, map[string]interface{}{
		"isActive": isActive,
	})
	return s.find(ctx, id)
}

func (s *UserService) UpdateRole(ctx context.Context, actor Actor, id string, role models.Role) (*models.User, error) {
	affected, err := s.users.Updates(ctx, id, map[string]interface{}{"role": role})
	if err != nil {
		return nil, apperr.FromDB(err)
	}
	if affected == 0 {
		return nil, apperr.NotFound("User not found")
	}

	s.activity.Log(actor, models.ActionRoleChange, models.EntityUser, id, map[string]interface{}{
		"role": role,
	})
	return s.find(ctx, id)
}

func (s *UserService) find(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return user, nil
}
