package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"givehaven/internal/storage"
	"givehaven/internal/utils"
	"givehaven/internal/verification"
	"givehaven/pkg/types"
)

func (c *Client) MyProfile(ctx context.Context, userID string) (*types.Profile, error) {
	profile, err := c.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.AvatarURL = c.resolveImage(profile.AvatarURL)
	return profile, nil
}

func (c *Client) MyHome(ctx context.Context, ownerID string) (*types.Home, error) {
	home, err := c.homes.HomeByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	home.LogoURL = c.resolveImage(home.LogoURL)
	return home, nil
}

func (c *Client) SetHomeVerificationStatus(ctx context.Context, homeID, rawStatus string) error {
	status, err := verification.ParseStatus(rawStatus)
	if err != nil {
		return err
	}

	return c.homes.UpdateVerificationStatus(ctx, homeID, string(status))
}

var logoContentTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var ErrUnsupportedLogoType = errors.New("logo must be a png, jpeg, webp or gif image")

// UpdateHomeLogo uploads a new logo for the caller's home and returns its public URL.
// A previous logo held in the bucket is removed once the home points at the new one.
func (c *Client) UpdateHomeLogo(ctx context.Context, ownerID string, body io.Reader, contentType string) (string, error) {
	ext, ok := logoContentTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", ErrUnsupportedLogoType
	}

	home, err := c.homes.HomeByOwner(ctx, ownerID)
	if err != nil {
		return "", err
	}

	key := path.Join("homes", home.ID, "logo-"+utils.NanoIDSize(8)+ext)
	if err := c.bucket.Put(ctx, key, body, contentType); err != nil {
		return "", fmt.Errorf("upload logo: %w", err)
	}

	if err := c.homes.UpdateLogo(ctx, home.ID, key); err != nil {
		return "", fmt.Errorf("save logo: %w", err)
	}

	if old := utils.PtrString(home.LogoURL); storage.IsManaged(old) {
		if err := c.bucket.Delete(ctx, old); err != nil {
			c.logger.WithError(err).WithField("storage_key", old).Warn("failed to delete replaced home logo")
		}
	}

	return c.bucket.PublicURL(key), nil
}
