package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sajad-git/election/api/models"
	"github.com/sajad-git/election/logging"
	"github.com/sajad-git/election/storage"
	"github.com/sajad-git/election/validation"
)

// VotingController drives the submit -> confirm -> commit/cancel flow. Each
// HTTP client session is identified by the x-session-token header, issued on
// first contact and echoed back on every response.
type VotingController struct {
	configStorage storage.ElectionConfigStorage
	ballotStorage storage.BallotStorage
	sessions      *SessionRegistry
}

func NewVotingController(configStorage storage.ElectionConfigStorage, ballotStorage storage.BallotStorage) *VotingController {
	return &VotingController{
		configStorage: configStorage,
		ballotStorage: ballotStorage,
		sessions:      NewSessionRegistry(),
	}
}

func (c *VotingController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api")

	group.GET("/election", c.getElection)
	group.POST("/vote", c.submitVote)
	group.POST("/vote/confirm", c.confirmVote)
	group.POST("/vote/cancel", c.cancelVote)
}

func (c *VotingController) resolveSession(g *gin.Context) *VoterSession {
	session := c.sessions.Resolve(g.GetHeader("x-session-token"))
	g.Header("x-session-token", session.Token)
	return session
}

// getElection godoc
// @Summary Describe the voting surface
// @Description Returns election title, active flag, candidates and the caller's flow stage
// @Tags voting
// @Produce json
// @Success 200 {object} models.ElectionStatusResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/election [get]
func (c *VotingController) getElection(g *gin.Context) {
	session := c.resolveSession(g)

	// isActive is re-read on every render, never cached
	config, err := c.configStorage.Load()
	if err != nil {
		logging.Log.Errorf("VOTE: failed to load election config: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load election config"})
		return
	}

	if !config.IsActive {
		g.JSON(http.StatusOK, &models.ElectionStatusResponse{
			Title:  models.ElectionTitle,
			Active: false,
			Stage:  session.Stage,
			Notice: models.ToPersianDigits(models.NoticeElectionInactive),
		})
		return
	}

	g.JSON(http.StatusOK, &models.ElectionStatusResponse{
		Title:      models.ElectionTitle,
		Active:     true,
		Candidates: config.Candidates,
		Stage:      session.Stage,
	})
}

// submitVote godoc
// @Summary Submit a ballot for confirmation
// @Description Validates the four fields, checks for a prior vote and moves the session to the confirm stage
// @Tags voting
// @Accept json
// @Produce json
// @Param vote body models.SubmitVoteRequest true "Ballot fields"
// @Success 200 {object} models.VoteStageResponse
// @Failure 400 {object} models.VoteStageResponse "Missing fields or validation errors"
// @Failure 409 {object} models.VoteStageResponse "Duplicate vote, inactive election or wrong stage"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/vote [post]
func (c *VotingController) submitVote(g *gin.Context) {
	session := c.resolveSession(g)

	config, err := c.configStorage.Load()
	if err != nil {
		logging.Log.Errorf("VOTE: failed to load election config: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load election config"})
		return
	}
	if !config.IsActive {
		g.JSON(http.StatusConflict, &models.VoteStageResponse{
			Stage:  session.Stage,
			Notice: models.ToPersianDigits(models.NoticeElectionInactive),
		})
		return
	}

	switch session.Stage {
	case StageVoted:
		g.JSON(http.StatusConflict, &models.VoteStageResponse{
			Stage:  StageVoted,
			Notice: models.ToPersianDigits(models.NoticeAlreadyVotedSession),
		})
		return
	case StageConfirm:
		g.JSON(http.StatusConflict, &models.VoteStageResponse{
			Stage:  StageConfirm,
			Choice: session.Choice,
			Notice: models.ToPersianDigits(fmt.Sprintf(models.NoticeConfirmPrompt, session.Choice)),
		})
		return
	}

	var req models.SubmitVoteRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	if req.NationalCode == "" || req.FirstName == "" || req.LastName == "" || req.Choice == "" {
		g.JSON(http.StatusBadRequest, &models.VoteStageResponse{
			Stage:  StageInitial,
			Errors: []string{models.ToPersianDigits(models.NoticeFillAllFields)},
		})
		return
	}

	// Collect every validation failure so the voter sees all of them at once.
	var validationErrors []string
	if !validation.IsValidNationalCode(req.NationalCode) {
		validationErrors = append(validationErrors, models.NoticeInvalidNationalCode)
	}
	if !validation.IsValidName(req.FirstName) {
		validationErrors = append(validationErrors, models.NoticeInvalidFirstName)
	}
	if !validation.IsValidName(req.LastName) {
		validationErrors = append(validationErrors, models.NoticeInvalidLastName)
	}
	if !hasCandidate(config.Candidates, req.Choice) {
		validationErrors = append(validationErrors, models.NoticeInvalidChoice)
	}
	if len(validationErrors) > 0 {
		for i, e := range validationErrors {
			validationErrors[i] = models.ToPersianDigits(e)
		}
		g.JSON(http.StatusBadRequest, &models.VoteStageResponse{
			Stage:  StageInitial,
			Errors: validationErrors,
		})
		return
	}

	nationalCode, _ := strconv.ParseInt(req.NationalCode, 10, 64)
	voted, err := c.ballotStorage.HasVoted(config.CurrentFile, nationalCode)
	if err != nil {
		logging.Log.Errorf("VOTE: duplicate check failed: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not check ballot table"})
		return
	}
	if voted {
		g.JSON(http.StatusConflict, &models.VoteStageResponse{
			Stage:  StageInitial,
			Notice: models.ToPersianDigits(models.NoticeAlreadyVoted),
		})
		return
	}

	session.Stage = StageConfirm
	session.NationalCode = req.NationalCode
	session.FirstName = req.FirstName
	session.LastName = req.LastName
	session.Choice = req.Choice

	g.JSON(http.StatusOK, &models.VoteStageResponse{
		Stage:  StageConfirm,
		Choice: req.Choice,
		Notice: models.ToPersianDigits(fmt.Sprintf(models.NoticeConfirmPrompt, req.Choice)),
	})
}

// confirmVote godoc
// @Summary Confirm the captured ballot
// @Description Re-checks for a duplicate, appends the ballot captured at submit time and moves the session to voted
// @Tags voting
// @Produce json
// @Success 200 {object} models.VoteStageResponse
// @Failure 409 {object} models.VoteStageResponse "Duplicate vote, inactive election or nothing to confirm"
// @Failure 500 {object} models.VoteStageResponse "Ballot could not be persisted"
// @Router /api/vote/confirm [post]
func (c *VotingController) confirmVote(g *gin.Context) {
	session := c.resolveSession(g)

	config, err := c.configStorage.Load()
	if err != nil {
		logging.Log.Errorf("VOTE: failed to load election config: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load election config"})
		return
	}
	if !config.IsActive {
		g.JSON(http.StatusConflict, &models.VoteStageResponse{
			Stage:  session.Stage,
			Notice: models.ToPersianDigits(models.NoticeElectionInactive),
		})
		return
	}

	switch session.Stage {
	case StageVoted:
		g.JSON(http.StatusConflict, &models.VoteStageResponse{
			Stage:  StageVoted,
			Notice: models.ToPersianDigits(models.NoticeAlreadyVotedSession),
		})
		return
	case StageInitial:
		g.JSON(http.StatusConflict, &models.VoteStageResponse{
			Stage:  StageInitial,
			Notice: models.ToPersianDigits(models.NoticeNothingToConfirm),
		})
		return
	}

	nationalCode, _ := strconv.ParseInt(session.NationalCode, 10, 64)

	// Best-effort recheck before committing; the append below re-checks
	// under the store lock, which is what actually enforces uniqueness.
	voted, err := c.ballotStorage.HasVoted(config.CurrentFile, nationalCode)
	if err != nil {
		logging.Log.Errorf("VOTE: duplicate recheck failed: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not check ballot table"})
		return
	}
	if voted {
		session.Reset()
		g.JSON(http.StatusConflict, &models.VoteStageResponse{
			Stage:  StageInitial,
			Notice: models.ToPersianDigits(models.NoticeAlreadyVoted),
		})
		return
	}

	// The choice committed is the one captured at submit time.
	ballot := &storage.Ballot{
		NationalCode: nationalCode,
		FirstName:    session.FirstName,
		LastName:     session.LastName,
		Choice:       session.Choice,
	}
	if err := c.ballotStorage.Append(config.CurrentFile, ballot); err != nil {
		if errors.Is(err, storage.ErrAlreadyVoted) {
			session.Reset()
			g.JSON(http.StatusConflict, &models.VoteStageResponse{
				Stage:  StageInitial,
				Notice: models.ToPersianDigits(models.NoticeAlreadyVoted),
			})
			return
		}
		logging.Log.Errorf("VOTE: failed to append ballot: %v", err)
		g.JSON(http.StatusInternalServerError, &models.VoteStageResponse{
			Stage:  StageConfirm,
			Notice: models.ToPersianDigits(models.NoticeVoteNotSaved),
		})
		return
	}

	session.Stage = StageVoted
	g.JSON(http.StatusOK, &models.VoteStageResponse{
		Stage:  StageVoted,
		Notice: models.ToPersianDigits(models.NoticeThankYou),
	})
}

// cancelVote godoc
// @Summary Cancel the captured ballot
// @Description Returns the session to the initial stage, discarding the capture
// @Tags voting
// @Produce json
// @Success 200 {object} models.VoteStageResponse
// @Router /api/vote/cancel [post]
func (c *VotingController) cancelVote(g *gin.Context) {
	session := c.resolveSession(g)

	if session.Stage == StageConfirm {
		session.Reset()
	}
	g.JSON(http.StatusOK, &models.VoteStageResponse{Stage: session.Stage})
}

func hasCandidate(candidates []string, choice string) bool {
	for _, c := range candidates {
		if c == choice {
			return true
		}
	}
	return false
}
