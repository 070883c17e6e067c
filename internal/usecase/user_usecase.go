package usecase

import (
	"context"
	"errors"

	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/policy"
	"hospital-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrForbidden      = errors.New("access denied")
	ErrUserHasRecords = errors.New("user has associated clinical records and cannot be deleted")
)

type UserUsecase interface {
	ListUsers(ctx context.Context) (*dto.UserListResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserDetailResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	patientRepo  repository.PatientRepository
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		patientRepo:  patientRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

func (u *userUsecase) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: int64(len(users)),
	}, nil
}

// GetUser returns a user plus its role profile. Non-admins may only fetch
// their own account.
func (u *userUsecase) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserDetailResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	if !policy.Allows(caller, &id, nil) {
		return nil, ErrForbidden
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToDetailResponse(user), nil
}

// UpdateUser patches account fields. The role is immutable; activation status
// can only be changed by an admin.
func (u *userUsecase) UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	if !policy.Allows(caller, &id, nil) {
		return nil, ErrForbidden
	}
	if req.IsActive != nil && !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to update user %s: %+v", id, err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// DeleteUser removes the account and its role profile in one transaction.
// Users that still own appointments or medical records are kept; those rows
// reference the profile and must be handled first.
func (u *userUsecase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.patientRepo.DeleteByUserID(tx, id); err != nil {
		if isForeignKeyError(err, "patient") {
			return ErrUserHasRecords
		}
		u.log.Warnf("Failed to delete patient profile for user %s: %+v", id, err)
		return err
	}
	if err := u.doctorRepo.DeleteByUserID(tx, id); err != nil {
		if isForeignKeyError(err, "doctor") {
			return ErrUserHasRecords
		}
		u.log.Warnf("Failed to delete doctor profile for user %s: %+v", id, err)
		return err
	}
	if err := u.userRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete user %s: %+v", id, err)
		return err
	}

	if err := u.auditService.Record(ctx, tx, &caller.UserID, entity.AuditActionUserDelete, entity.JSON{
		"deleted_user_id": id.String(),
		"email":           user.Email,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("User deleted: id=%s", id)
	return nil
}
