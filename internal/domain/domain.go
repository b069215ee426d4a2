package domain

import (
	"github.com/yungbote/brandcraft-backend/internal/domain/auth"
	"github.com/yungbote/brandcraft-backend/internal/domain/content"
	"github.com/yungbote/brandcraft-backend/internal/domain/user"
)

type User = user.User
type UserProfile = user.UserProfile
type OnboardingResponse = user.OnboardingResponse

type UserToken = auth.UserToken

type Generation = content.Generation
type GeneratedContent = content.GeneratedContent
