package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imaditya55/RoomMateMatcher/internal/database"
	"github.com/imaditya55/RoomMateMatcher/internal/models"
	"github.com/imaditya55/RoomMateMatcher/internal/services"
	"github.com/imaditya55/RoomMateMatcher/pkg/logger"
)

const matchCacheTTL = 30 * time.Second

// GetProfile returns the logged-in user's own profile.
func GetProfile(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile fetched successfully",
		"user":    user,
	})
}

// UpdatePreferences handles PUT /user/preferences
func UpdatePreferences(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var prefs models.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preferences payload"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Preferences = prefs
	if err := database.DB.Save(&user).Error; err != nil {
		respondError(c, err)
		return
	}

	// Changed preferences shift everyone's scores, not just ours
	if err := database.CacheInvalidate("matches:*"); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate match cache")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Preferences updated", "user": user})
}

// GetSavedRoommates handles GET /user/saved
func GetSavedRoommates(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var rows []models.SavedRoommate
	if err := database.DB.Preload("Roommate").
		Where("user_id = ?", userId).
		Order("created_at desc").
		Find(&rows).Error; err != nil {
		respondError(c, err)
		return
	}

	saved := make([]models.PublicProfile, 0, len(rows))
	for _, row := range rows {
		saved = append(saved, row.Roommate.Public())
	}

	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

// SaveRoommate handles POST /user/saved/:roommateId
func SaveRoommate(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	roommateID := c.Param("roommateId")

	if roommateID == userId {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You can't save yourself"})
		return
	}

	var target models.User
	if err := database.DB.Select("id").First(&target, "id = ?", roommateID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Roommate not found"})
		return
	}

	row := models.SavedRoommate{UserID: userId, RoommateID: roommateID}
	if err := database.DB.Create(&row).Error; err != nil {
		// Unique index hit: already saved, set semantics make this a no-op
		var existing models.SavedRoommate
		if dbErr := database.DB.
			Where("user_id = ? AND roommate_id = ?", userId, roommateID).
			First(&existing).Error; dbErr != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Saved"})
}

// UnsaveRoommate handles DELETE /user/saved/:roommateId
func UnsaveRoommate(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	roommateID := c.Param("roommateId")

	if err := database.DB.
		Where("user_id = ? AND roommate_id = ?", userId, roommateID).
		Delete(&models.SavedRoommate{}).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unsaved"})
}

// MatchEntry is one scored candidate in the match list, enriched with the
// saved flag and any existing roommate request between the pair.
type MatchEntry struct {
	User    models.PublicProfile `json:"user"`
	Score   int                  `json:"score"`
	Reasons []string             `json:"reasons"`
	IsSaved bool                 `json:"isSaved"`
	Request *RequestRef          `json:"request"`
}

type RequestRef struct {
	RequestID string               `json:"requestId"`
	Status    models.RequestStatus `json:"status"`
	Direction string               `json:"direction"` // outgoing | incoming
}

// GetMatches scores every other user against the current user's preferences
// and returns candidates above the threshold, best first. Results are cached
// briefly per user since scoring is O(users) on every call.
func GetMatches(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	cacheKey := fmt.Sprintf("matches:%s", userId)
	var cached []MatchEntry
	if err := database.CacheGet(cacheKey, &cached); err == nil {
		c.JSON(http.StatusOK, gin.H{"matches": cached})
		return
	}

	var me models.User
	if err := database.DB.First(&me, "id = ?", userId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Saved set
	var savedRows []models.SavedRoommate
	if err := database.DB.Where("user_id = ?", userId).Find(&savedRows).Error; err != nil {
		respondError(c, err)
		return
	}
	savedSet := make(map[string]bool, len(savedRows))
	for _, row := range savedRows {
		savedSet[row.RoommateID] = true
	}

	// Existing requests, keyed by counterpart
	list, err := services.ListRequestsForUser(userId)
	if err != nil {
		respondError(c, err)
		return
	}
	requestMap := make(map[string]*RequestRef)
	for _, r := range list.Outgoing {
		requestMap[r.ToID] = &RequestRef{RequestID: r.ID, Status: r.Status, Direction: "outgoing"}
	}
	for _, r := range list.Incoming {
		requestMap[r.FromID] = &RequestRef{RequestID: r.ID, Status: r.Status, Direction: "incoming"}
	}

	var others []models.User
	if err := database.DB.Where("id <> ?", userId).Find(&others).Error; err != nil {
		respondError(c, err)
		return
	}

	matches := []MatchEntry{}
	for _, u := range others {
		result := services.MatchScore(me.Preferences, u.Preferences)
		if result.Score < services.MatchThreshold {
			continue
		}
		matches = append(matches, MatchEntry{
			User:    u.Public(),
			Score:   result.Score,
			Reasons: result.Reasons,
			IsSaved: savedSet[u.ID],
			Request: requestMap[u.ID],
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if err := database.CacheSet(cacheKey, matches, matchCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache match results")
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
