package services

import (
	"context"
	"time"

	"fitcats/config"
	"fitcats/db"
	"fitcats/models"
	"fitcats/store"
	"fitcats/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// AuthService wraps the Cognito identity provider and bootstraps the user
// document on sign-up. The Cognito user id ("sub") doubles as the document id.
type AuthService struct {
	cfg    *config.Config
	client *cognitoidentityprovider.Client
	store  store.Store
	ranks  *RankService
}

func NewAuthService(ctx context.Context, cfg *config.Config, st store.Store, ranks *RankService) (*AuthService, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(cfg.Cognito.Region))
	if err != nil {
		return nil, &AuthError{Message: "Failed to initialize identity provider", Err: err}
	}
	return &AuthService{
		cfg:    cfg,
		client: cognitoidentityprovider.NewFromConfig(awsCfg),
		store:  st,
		ranks:  ranks,
	}, nil
}

// SignUp registers the account with Cognito and creates the user document.
func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" {
		return nil, &ValidationError{Field: "username", Reason: "must not be empty"}
	}

	secretHash := utils.GenerateSecretHash(email, s.cfg.Cognito.AppClientId, s.cfg.Cognito.AppClientSecret)
	out, err := s.client.SignUp(ctx, &cognitoidentityprovider.SignUpInput{
		ClientId:   aws.String(s.cfg.Cognito.AppClientId),
		Password:   aws.String(password),
		SecretHash: aws.String(secretHash),
		Username:   aws.String(email),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("nickname"), Value: aws.String(username)},
		},
	})
	if err != nil {
		return nil, &AuthError{Message: "Failed to create account", Err: err}
	}
	if out.UserSub == nil {
		return nil, &AuthError{Message: "Identity provider returned no user id"}
	}

	user := s.newUser(*out.UserSub, username, email)
	if err := s.store.Set(ctx, db.UsersCollection, user.ID, user); err != nil {
		return nil, persistence("set", db.UsersCollection, user.ID, err)
	}
	return user, nil
}

func (s *AuthService) newUser(id, username, email string) *models.User {
	now := time.Now()
	baseline, _ := s.ranks.RankFor(0)
	return &models.User{
		ID:               id,
		Username:         username,
		Email:            email,
		CurrentRank:      baseline,
		Friends:          []string{},
		FriendRequests:   []string{},
		Leagues:          []string{},
		LeagueInvites:    []string{},
		LeagueSteps:      []models.LeagueSteps{},
		Statistics:       models.Statistics{StepsPerWeek: []int{}, Ranks: []string{}, BestRank: baseline.Name},
		LastRolloverWeek: WeekID(now),
		CreatedAt:        now,
	}
}

// SignIn authenticates against Cognito and returns the access token plus the
// opaque user id.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (token, userID string, err error) {
	secretHash := utils.GenerateSecretHash(email, s.cfg.Cognito.AppClientId, s.cfg.Cognito.AppClientSecret)
	authOut, err := s.client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(s.cfg.Cognito.AppClientId),
		AuthParameters: map[string]string{
			"USERNAME":    email,
			"PASSWORD":    password,
			"SECRET_HASH": secretHash,
		},
	})
	if err != nil {
		return "", "", &AuthError{Message: "Invalid email or password", Err: err}
	}
	if authOut.AuthenticationResult == nil || authOut.AuthenticationResult.AccessToken == nil {
		return "", "", &AuthError{Message: "Identity provider returned no token"}
	}

	token = *authOut.AuthenticationResult.AccessToken
	userID, _, err = s.ValidateToken(ctx, token)
	if err != nil {
		return "", "", err
	}
	return token, userID, nil
}

// SignOut revokes every token issued for the session.
func (s *AuthService) SignOut(ctx context.Context, accessToken string) error {
	_, err := s.client.GlobalSignOut(ctx, &cognitoidentityprovider.GlobalSignOutInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return &AuthError{Message: "Failed to sign out", Err: err}
	}
	return nil
}

// ValidateToken resolves an access token to the user id and email, failing
// with an AuthError when Cognito rejects it.
func (s *AuthService) ValidateToken(ctx context.Context, accessToken string) (userID, email string, err error) {
	out, err := s.client.GetUser(ctx, &cognitoidentityprovider.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return "", "", &AuthError{Message: "Invalid or expired token", Err: err}
	}

	for _, attr := range out.UserAttributes {
		if attr.Name == nil || attr.Value == nil {
			continue
		}
		switch *attr.Name {
		case "sub":
			userID = *attr.Value
		case "email":
			email = *attr.Value
		}
	}
	if userID == "" {
		return "", "", &AuthError{Message: "Identity provider returned no user id"}
	}
	return userID, email, nil
}
