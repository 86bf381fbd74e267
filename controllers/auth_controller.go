package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"pronet/config"
	"pronet/models"
	"pronet/utils"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// AuthController handles Google OAuth login and session endpoints.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

func (a *AuthController) oauthConfig() *oauth2.Config {
	cfg := config.Get()
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
		RedirectURL:  fmt.Sprintf("%s/auth/google/callback", cfg.OAuthRedirectBase),
	}
}

// GoogleLogin redirects the browser to the Google consent screen.
func (a *AuthController) GoogleLogin(ctx *gin.Context) {
	state, err := utils.NewState(10 * time.Minute)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to create login state")
		return
	}
	ctx.Redirect(http.StatusTemporaryRedirect, a.oauthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline))
}

type googleUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleCallback exchanges the authorization code, provisions the account and
// redirects back to the frontend with a session JWT.
func (a *AuthController) GoogleCallback(ctx *gin.Context) {
	code := ctx.Query("code")
	state := ctx.Query("state")
	if code == "" || state == "" {
		utils.Error(ctx, http.StatusBadRequest, 40005, "missing code or state")
		return
	}
	if !utils.ConsumeState(state) {
		utils.Error(ctx, http.StatusBadRequest, 40006, "invalid or expired state")
		return
	}

	oc := a.oauthConfig()
	token, err := oc.Exchange(context.Background(), code)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40007, "failed to exchange code")
		return
	}

	info, err := fetchGoogleUser(oc, token)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50005, "failed to fetch user info")
		return
	}
	if info.Email == "" {
		utils.Error(ctx, http.StatusBadRequest, 40008, "google account has no email")
		return
	}

	user, err := a.findOrCreateGoogleUser(info, token.AccessToken)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50006, "failed to persist user")
		return
	}

	jwtToken, err := utils.GenerateToken(user.ID, user.Email, user.DisplayName(), user.ProfilePic, 72*time.Hour)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	redirect := fmt.Sprintf("%s/auth/callback?token=%s", config.Get().FrontendURL, url.QueryEscape(jwtToken))
	ctx.Redirect(http.StatusTemporaryRedirect, redirect)
}

func fetchGoogleUser(oc *oauth2.Config, token *oauth2.Token) (*googleUser, error) {
	client := oc.Client(context.Background(), token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	var info googleUser
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (a *AuthController) findOrCreateGoogleUser(info *googleUser, accessToken string) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(info.Email))

	var user models.User
	err := a.db.Where("email = ?", email).First(&user).Error
	if err == nil {
		// Refresh identity fields that may have changed at the provider.
		updates := map[string]interface{}{
			"provider":         "google",
			"provider_user_id": info.ID,
			"access_token":     accessToken,
		}
		if info.Picture != "" && info.Picture != user.ProfilePic {
			updates["profile_pic"] = info.Picture
			user.ProfilePic = info.Picture
		}
		if err := a.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	first, last := splitName(info.Name)
	username, err := a.uniqueUsername(email)
	if err != nil {
		return nil, err
	}
	user = models.User{
		FirstName:      first,
		LastName:       last,
		Username:       username,
		Email:          email,
		ProfilePic:     info.Picture,
		Provider:       "google",
		ProviderUserID: info.ID,
		AccessToken:    accessToken,
		Interests:      models.StringList{},
		Skills:         models.StringList{},
		IsActive:       true,
	}
	if err := a.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

var usernameCleaner = regexp.MustCompile(`[^a-z0-9_]`)

// uniqueUsername derives a handle from the email local part, appending a
// random numeric suffix until it is free.
func (a *AuthController) uniqueUsername(email string) (string, error) {
	base := usernameCleaner.ReplaceAllString(strings.ToLower(strings.SplitN(email, "@", 2)[0]), "")
	if base == "" {
		base = "member"
	}

	candidate := base
	for i := 0; i < 10; i++ {
		var count int64
		if err := a.db.Model(&models.User{}).Where("username = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%04d", base, rand.Intn(10000))
	}
	return fmt.Sprintf("%s%d", base, time.Now().UnixNano()%1000000), nil
}

// Me returns the profile of the authenticated user.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := authedUserID(ctx)
	if !ok {
		return
	}
	var user models.User
	if err := a.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}

// Logout revokes the presented token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusBadRequest, 40009, "missing bearer token")
		return
	}
	tokenString := strings.TrimSpace(parts[1])
	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}
	utils.BlacklistToken(tokenString, claims.ExpiresAt.Time)
	utils.Success(ctx, gin.H{"logged_out": true})
}
