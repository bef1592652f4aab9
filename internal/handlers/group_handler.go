package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yuchengtw/duty-roster-bot/internal/domain/contract"
	"github.com/yuchengtw/duty-roster-bot/internal/domain/entity"
)

var errGroupExists = errors.New("group already registered")

// GroupHandler manages operator-saved announcement targets.
type GroupHandler struct {
	dm contract.DataManager
}

func NewGroups(dm contract.DataManager) *GroupHandler {
	return &GroupHandler{dm: dm}
}

type createGroupRequest struct {
	Name    string `json:"name" binding:"required"`
	GroupID string `json:"group_id" binding:"required"`
}

// List handles GET /groups.
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.dm.Group().List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// Create handles POST /groups. The duplicate check and the insert run in one
// transaction so two concurrent registrations cannot both pass the check.
func (h *GroupHandler) Create(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := &entity.Group{Name: req.Name, GroupID: req.GroupID}
	err := h.dm.WithTransaction(c.Request.Context(), func(dm contract.DataManager) error {
		existing, err := dm.Group().GetByGroupID(req.GroupID)
		if err != nil {
			return err
		}
		if existing != nil {
			return errGroupExists
		}
		return dm.Group().Create(group)
	})
	if errors.Is(err, errGroupExists) {
		c.JSON(http.StatusConflict, gin.H{"error": errGroupExists.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, group)
}

// Delete handles DELETE /groups/:id. Preset groups cannot be removed.
func (h *GroupHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}

	group, err := h.dm.Group().GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if group == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}
	if group.IsPreset {
		c.JSON(http.StatusForbidden, gin.H{"error": "preset groups cannot be removed"})
		return
	}

	if err := h.dm.Group().Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
