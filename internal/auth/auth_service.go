package auth

import (
	"context"
	"os"
	"strings"
	"time"

	autherrors "uni-leave-portal/internal/auth/errors"
	"uni-leave-portal/internal/domain"
	"uni-leave-portal/internal/faculty"
	facultyerrors "uni-leave-portal/internal/faculty/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, facultyID string) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	facultyRepo faculty.Repository
}

func NewService(facultyRepo faculty.Repository) Service {
	return &service{facultyRepo: facultyRepo}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	f, err := s.facultyRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(f.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := s.generateToken(f.ID.String(), f.Name, f.Role, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(f.ID.String(), f.Name, f.Role, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, mapToAuthResponse(f), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	facultyID, ok := claims["faculty_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	f, err := s.facultyRepo.FindByID(ctx, facultyID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	newAccessToken, err := s.generateToken(f.ID.String(), f.Name, f.Role, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(f.ID.String(), f.Name, f.Role, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, mapToAuthResponse(f), nil
}

func (s *service) GetMe(ctx context.Context, facultyID string) (*AuthResponse, error) {
	if _, err := uuid.Parse(facultyID); err != nil {
		return nil, facultyerrors.ErrInvalidFacultyID
	}

	f, err := s.facultyRepo.FindByID(ctx, facultyID)
	if err != nil {
		return nil, facultyerrors.ErrFacultyNotFound
	}

	resp := mapToAuthResponse(f)
	return &resp, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = domain.RoleFaculty
	}

	f := &faculty.Faculty{
		ID:         uuid.New(),
		Name:       req.Name,
		Email:      strings.ToLower(req.Email),
		Password:   string(hashed),
		Role:       role,
		Department: req.Department,
	}

	if err := s.facultyRepo.Create(ctx, f); err != nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	return mapToAuthResponse(f), nil
}

func (s *service) generateToken(facultyID, name, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"faculty_id": facultyID,
		"name":       name,
		"role":       role,
		"exp":        time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(f *faculty.Faculty) AuthResponse {
	return AuthResponse{
		ID:         f.ID.String(),
		Name:       f.Name,
		Email:      f.Email,
		Role:       f.Role,
		Department: f.Department,
	}
}
