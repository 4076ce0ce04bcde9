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

import "errors"

// Failure taxonomy of the mutation pipeline. Queries never return
// authorization failures; they degrade to empty results instead.
var (
	// ErrUnauthenticated means no caller identity was resolved.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrAccessDenied conflates "not found" and "not authorized" so a
	// caller cannot probe for the existence of resources it cannot
	// see. The true cause is logged server side only.
	ErrAccessDenied = errors.New("not found or access denied")

	// ErrUserNotFound is returned from member resolution by email.
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyMember rejects duplicate membership.
	ErrAlreadyMember = errors.New("user is already a member")

	// ErrNotificationNotFound conflates absence and foreign ownership
	// of a notification.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrEmailTaken rejects registration with a known email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers unknown email, wrong password and
	// invalid OTP codes without distinguishing them.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidArgument rejects malformed input (empty title, unknown
	// status or priority, bad theme).
	ErrInvalidArgument = errors.New("invalid argument")
)
