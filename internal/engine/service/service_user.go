// Copyright 2026 Taskboard Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/go-taskboard/taskboard/internal/engine/model"
	"github.com/go-taskboard/taskboard/internal/engine/repo"
	"github.com/go-taskboard/taskboard/pkg/ctx"
	"github.com/go-taskboard/taskboard/pkg/http"
	"github.com/go-taskboard/taskboard/pkg/http/jwt"
	"github.com/go-taskboard/taskboard/pkg/id"
	"github.com/go-taskboard/taskboard/pkg/log"
)

const otpTTL = 10 * time.Minute

// UserService owns accounts, sessions and the per-user settings row.
// Sessions live in redis under auth.redisKeyPrefix+userId; the
// authorization middleware checks the key on every request, so logout
// invalidates tokens immediately.
type UserService struct {
	store      repo.Store
	appCtx     *ctx.Context
	auth       http.Auth
	dispatcher Dispatcher
}

func NewUserService(store repo.Store, appCtx *ctx.Context, auth http.Auth, dispatcher Dispatcher) *UserService {
	if dispatcher == nil {
		dispatcher = nopDispatcher{}
	}
	return &UserService{store: store, appCtx: appCtx, auth: auth, dispatcher: dispatcher}
}

// Register creates an account and issues a verification code for the
// email. The code is delivered out of band after the transaction
// commits.
func (s *UserService) Register(req *model.RegisterReq) (*model.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidArgument)
	}

	existing, err := s.store.Users().GetUserByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		UserId:   id.GetUUID(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	}
	code, err := otpCode()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}

	err = s.store.Atomic(func(st repo.Store) error {
		if err := st.Users().CreateUser(user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return st.OtpCodes().CreateOtp(&model.OtpCode{
			Email:     req.Email,
			Code:      code,
			ExpiresAt: time.Now().Add(otpTTL),
		})
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.OtpIssued(req.Email, code)
	log.Infow("user registered", "userId", user.UserId)
	return user, nil
}

// VerifyEmail consumes a pending verification code. Expired, used and
// unknown codes are rejected alike.
func (s *UserService) VerifyEmail(email, code string) error {
	otp, err := s.store.OtpCodes().GetValidOtp(email, code)
	if err != nil {
		return fmt.Errorf("lookup otp: %w", err)
	}
	if otp == nil {
		return ErrInvalidCredentials
	}
	return s.store.OtpCodes().MarkOtpUsed(otp.ID)
}

// Login checks the password and opens a redis-backed session.
func (s *UserService) Login(req *model.LoginReq) (*model.TokenPair, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidArgument)
	}

	user, err := s.store.Users().GetUserByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		log.Debugw("password mismatch", "userId", user.UserId)
		return nil, ErrInvalidCredentials
	}

	aToken, rToken, err := jwt.GenToken(user.UserId, []byte(s.auth.SecretKey), s.auth.AccessExpire, s.auth.RefreshExpire)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	sessionKey := s.auth.RedisKeyPrefix + user.UserId
	if err := s.appCtx.GetRedis().Set(s.appCtx.GetCtx(), sessionKey, aToken, s.auth.AccessExpire*time.Minute).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	log.Infow("user logged in", "userId", user.UserId)
	return &model.TokenPair{AccessToken: aToken, RefreshToken: rToken}, nil
}

// Logout drops the session key; outstanding tokens stop working.
func (s *UserService) Logout(actorId string) error {
	if actorId == "" {
		return ErrUnauthenticated
	}
	sessionKey := s.auth.RedisKeyPrefix + actorId
	if err := s.appCtx.GetRedis().Del(s.appCtx.GetCtx(), sessionKey).Err(); err != nil {
		return fmt.Errorf("drop session: %w", err)
	}
	return nil
}

// Current returns the caller merged with settings, synthesizing
// defaults when no settings row exists yet. Anonymous callers get nil.
func (s *UserService) Current(actorId string) (*model.CurrentUser, error) {
	if actorId == "" {
		return nil, nil
	}
	user, err := s.store.Users().GetUserById(actorId)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	settings, err := s.store.Settings().GetByUser(actorId)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if settings == nil {
		settings = model.DefaultUserSettings(actorId)
	}

	return &model.CurrentUser{
		UserId:   user.UserId,
		Name:     user.Name,
		Email:    user.Email,
		Settings: settings,
	}, nil
}

// UpdateSettings patches the caller's settings, creating the row from
// defaults on first write. Every write refreshes lastActiveAt.
func (s *UserService) UpdateSettings(actorId string, req *model.UpdateSettingsReq) error {
	if actorId == "" {
		return ErrUnauthenticated
	}
	if req.Theme != nil && *req.Theme != model.ThemeLight && *req.Theme != model.ThemeDark {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidArgument, *req.Theme)
	}

	return s.store.Atomic(func(st repo.Store) error {
		settings, err := st.Settings().GetByUser(actorId)
		if err != nil {
			return fmt.Errorf("get settings: %w", err)
		}
		if settings == nil {
			settings = model.DefaultUserSettings(actorId)
			if req.EmailNotifications != nil {
				settings.EmailNotifications = *req.EmailNotifications
			}
			if req.Theme != nil {
				settings.Theme = *req.Theme
			}
			return st.Settings().CreateSettings(settings)
		}

		updates := map[string]any{"last_active_at": time.Now()}
		if req.EmailNotifications != nil {
			updates["email_notifications"] = *req.EmailNotifications
		}
		if req.Theme != nil {
			updates["theme"] = *req.Theme
		}
		return st.Settings().UpdateSettingsFields(actorId, updates)
	})
}

// ToggleSuperUser flips the caller's super-user flag when the supplied
// key matches the configured bcrypt hash. With no hash configured the
// feature is disabled.
func (s *UserService) ToggleSuperUser(actorId, key string) (bool, error) {
	if actorId == "" {
		return false, ErrUnauthenticated
	}
	if s.auth.SuperUserKeyHash == "" {
		return false, ErrAccessDenied
	}
	if bcrypt.CompareHashAndPassword([]byte(s.auth.SuperUserKeyHash), []byte(key)) != nil {
		log.Warnw("super-user elevation rejected", "userId", actorId)
		return false, ErrAccessDenied
	}

	var enabled bool
	err := s.store.Atomic(func(st repo.Store) error {
		settings, err := st.Settings().GetByUser(actorId)
		if err != nil {
			return fmt.Errorf("get settings: %w", err)
		}
		if settings == nil {
			settings = model.DefaultUserSettings(actorId)
			settings.IsSuperUser = true
			enabled = true
			return st.Settings().CreateSettings(settings)
		}
		enabled = !settings.IsSuperUser
		return st.Settings().UpdateSettingsFields(actorId, map[string]any{
			"is_super_user":  enabled,
			"last_active_at": time.Now(),
		})
	})
	if err != nil {
		return false, err
	}

	log.Infow("super-user toggled", "userId", actorId, "enabled", enabled)
	return enabled, nil
}

func otpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
