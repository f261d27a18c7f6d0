package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/storage"
	"travel-booking/pkg/utils"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgUserNotFound   = "User not found"
	profilePictureDir = "profile-pictures"
)

// allowedPictureTypes maps a sniffed content type to the stored file extension.
var allowedPictureTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	UploadProfilePicture(ctx context.Context, userID uuid.UUID, file io.Reader) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	disk     storage.Disk
	now      clock
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, disk storage.Disk, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		disk:     disk,
		now:      utcNow,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	user, err := us.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	user.UpdatedAt = us.now()

	if err := us.save(ctx, user); err != nil {
		return nil, err
	}

	us.log.Info("Profile updated", zap.String("user_id", userID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UploadProfilePicture(ctx context.Context, userID uuid.UUID, file io.Reader) (*response.UserResponse, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, utils.NewValidationError("No file uploaded", nil)
	}

	mtype := mimetype.Detect(data)
	ext, ok := allowedPictureTypes[mtype.String()]
	if !ok {
		us.log.Warn("Rejected profile picture",
			zap.String("user_id", userID.String()),
			zap.String("mime", mtype.String()))
		return nil, utils.NewValidationError("Only JPEG and PNG images are allowed", map[string]string{
			"file": fmt.Sprintf("Unsupported type %s", mtype.String()),
		})
	}

	user, err := us.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%s-%d%s", profilePictureDir, userID, us.now().UnixNano(), ext)
	if err := us.disk.Put(ctx, path, bytes.NewReader(data), mtype.String()); err != nil {
		us.log.Error("Failed to store profile picture", zap.Error(err), zap.String("path", path))
		return nil, fmt.Errorf("store profile picture: %w", err)
	}

	previous := user.ProfilePicture
	user.ProfilePicture = us.disk.URL(path)
	user.UpdatedAt = us.now()

	if err := us.save(ctx, user); err != nil {
		if delErr := us.disk.Delete(ctx, path); delErr != nil {
			us.log.Warn("Failed to remove orphaned upload", zap.Error(delErr), zap.String("path", path))
		}
		return nil, err
	}

	// Google avatars and other foreign URLs are not ours to delete.
	if old, ok := us.disk.PathFromURL(previous); ok && old != path {
		if err := us.disk.Delete(ctx, old); err != nil {
			us.log.Warn("Failed to delete previous profile picture", zap.Error(err), zap.String("path", old))
		}
	}

	us.log.Info("Profile picture uploaded",
		zap.String("user_id", userID.String()),
		zap.String("path", path))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) find(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}
	if user == nil {
		return nil, utils.NewNotFoundError(msgUserNotFound)
	}
	return user, nil
}

func (us *userService) save(ctx context.Context, user *entity.User) error {
	if err := us.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NewNotFoundError(msgUserNotFound)
		}
		return fmt.Errorf("update user %s: %w", user.ID, err)
	}
	return nil
}
