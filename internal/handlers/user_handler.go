package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// UserHandler handles mentor/mentee management requests.
type UserHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer, auditService services.AuditServicer) *UserHandler {
	return &UserHandler{userService: userService, auditService: auditService}
}

// AssignMentorRequest represents the mentor assignment payload
type AssignMentorRequest struct {
	Permission models.MentorPermission `json:"permission" binding:"omitempty,mentor_permission"`
}

// MenteeResponse represents a mentee in mentor-management responses
type MenteeResponse struct {
	ID               uint                    `json:"id"`
	Name             string                  `json:"name"`
	Email            string                  `json:"email"`
	MentorPermission models.MentorPermission `json:"mentor_permission"`
}

func toMenteeResponse(user *models.User) MenteeResponse {
	return MenteeResponse{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		MentorPermission: user.MentorPermission,
	}
}

// GetMentees lists the users mentored by the requesting admin
// @Summary     List mentees
// @Description List the users mentored by the authenticated admin
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} MenteeResponse "Mentees"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Router      /users/mentees [get]
func (h *UserHandler) GetMentees(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	mentees, err := h.userService.GetMentees(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	response := make([]MenteeResponse, 0, len(mentees))
	for i := range mentees {
		response = append(response, toMenteeResponse(&mentees[i]))
	}
	c.JSON(http.StatusOK, gin.H{"mentees": response})
}

// GetAssignableUsers lists users available for mentor assignment
// @Summary     List assignable users
// @Description List non-admin users that can be assigned as mentees
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} MenteeResponse "Assignable users"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Router      /users/assignable [get]
func (h *UserHandler) GetAssignableUsers(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	users, err := h.userService.GetAssignableUsers(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	response := make([]MenteeResponse, 0, len(users))
	for i := range users {
		response = append(response, toMenteeResponse(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": response})
}

// AssignMentor links a user to the requesting admin as mentee
// @Summary     Assign mentor
// @Description Make the authenticated admin the mentor of the given user
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Param       request body AssignMentorRequest true "Mentor permission"
// @Success     200 {object} MenteeResponse "Mentee linked"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id}/mentor [post]
func (h *UserHandler) AssignMentor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	menteeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AssignMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	mentee, err := h.userService.AssignMentor(userID, menteeID, req.Permission)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ASSIGN_MENTOR", "user", menteeID, c.ClientIP(),
		map[string]interface{}{"permission": mentee.MentorPermission})

	c.JSON(http.StatusOK, gin.H{"mentee": toMenteeResponse(mentee)})
}

// RemoveMentor unlinks a mentee from the requesting admin
// @Summary     Remove mentor
// @Description Remove the mentor link from one of the admin's mentees
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} MessageResponse "Mentor removed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not an admin or not your mentee"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id}/mentor [delete]
func (h *UserHandler) RemoveMentor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	menteeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.userService.RemoveMentor(userID, menteeID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "REMOVE_MENTOR", "user", menteeID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Mentor removed successfully"})
}
