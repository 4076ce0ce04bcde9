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

package model

import "time"

// User is an account record. The password column stores a bcrypt hash
// and is never serialized.
type User struct {
	BaseModel
	UserId   string `gorm:"column:user_id;uniqueIndex;type:varchar(64)" json:"userId"`
	Name     string `gorm:"column:name;type:varchar(128)" json:"name"`
	Email    string `gorm:"column:email;uniqueIndex;type:varchar(255)" json:"email"`
	Password string `gorm:"column:password;type:varchar(255)" json:"-"`
}

func (User) TableName() string {
	return "t_user"
}

// RegisterReq registers a new account.
type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginReq authenticates an account by email and password.
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is returned from login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// CurrentUser is the caller's user record merged with settings. When
// no settings row exists yet, defaults are synthesized at read time.
type CurrentUser struct {
	UserId   string        `json:"userId"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Settings *UserSettings `json:"settings"`
}

// MemberInfo is a project member enriched with display fields.
type MemberInfo struct {
	UserId  string `json:"userId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsOwner bool   `json:"isOwner"`
}

// Themes for the settings row.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UserSettings is the per-user preference row, created lazily on the
// first settings write.
type UserSettings struct {
	BaseModel
	UserId             string    `gorm:"column:user_id;uniqueIndex;type:varchar(64)" json:"userId"`
	IsSuperUser        bool      `gorm:"column:is_super_user" json:"isSuperUser"`
	EmailNotifications bool      `gorm:"column:email_notifications" json:"emailNotifications"`
	Theme              string    `gorm:"column:theme;type:varchar(16)" json:"theme"`
	LastActiveAt       time.Time `gorm:"column:last_active_at" json:"lastActiveAt"`
}

func (UserSettings) TableName() string {
	return "t_user_settings"
}

// DefaultUserSettings returns the settings synthesized for users who
// never persisted a settings row.
func DefaultUserSettings(userId string) *UserSettings {
	return &UserSettings{
		UserId:             userId,
		IsSuperUser:        false,
		EmailNotifications: true,
		Theme:              ThemeLight,
		LastActiveAt:       time.Now(),
	}
}

// UpdateSettingsReq patches the caller's settings row.
type UpdateSettingsReq struct {
	EmailNotifications *bool   `json:"emailNotifications,omitempty"`
	Theme              *string `json:"theme,omitempty"`
}

// ToggleSuperUserReq carries the elevation key checked against the
// configured bcrypt hash.
type ToggleSuperUserReq struct {
	Key string `json:"key"`
}
