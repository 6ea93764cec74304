package controller

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService    *service.ProgressService
	CurriculumService  *service.CurriculumService
	JournalService     *service.JournalService
	AchievementService *service.AchievementService
}

func NewProgressController(progress *service.ProgressService, curriculum *service.CurriculumService, journal *service.JournalService, achievements *service.AchievementService) *ProgressController {
	return &ProgressController{
		ProgressService:    progress,
		CurriculumService:  curriculum,
		JournalService:     journal,
		AchievementService: achievements,
	}
}

// CompleteActivityRequest carries the per-type result payload. Only the
// fields for the given type are read.
// swagger:model CompleteActivityRequest
type CompleteActivityRequest struct {
	Type   model.ActivityType `json:"type" binding:"required,oneof=vocabulary reading grammar listening writing speaking"`
	WeekID string             `json:"weekId" binding:"required"`

	// vocabulary
	WordsMastered int `json:"wordsMastered"`
	TotalWords    int `json:"totalWords"`
	QuizScore     int `json:"quizScore"`

	// reading
	ReadingTime       int `json:"readingTime"`
	WPM               int `json:"wpm"`
	QuestionsAnswered int `json:"questionsAnswered"`
	TotalQuestions    int `json:"totalQuestions"`

	// reading + listening
	ComprehensionScore int `json:"comprehensionScore"`

	// grammar
	ExercisesCompleted int      `json:"exercisesCompleted"`
	TotalExercises     int      `json:"totalExercises"`
	CorrectAnswers     int      `json:"correctAnswers"`
	TotalAttempts      int      `json:"totalAttempts"`
	WeakPoints         []string `json:"weakPoints"`

	// listening
	ListenCount      int     `json:"listenCount"`
	TranscriptViewed bool    `json:"transcriptViewed"`
	DictationScore   int     `json:"dictationScore"`
	AverageSpeed     float64 `json:"averageSpeed"`

	// writing
	SubmittedText string `json:"submittedText"`
	WordCount     int    `json:"wordCount"`
	WritingTime   int    `json:"writingTime"`

	// speaking
	RecordingsCompleted int `json:"recordingsCompleted"`
	TotalSentences      int `json:"totalSentences"`
	RecordingDuration   int `json:"recordingDuration"`
	Attempts            int `json:"attempts"`

	// writing + speaking
	SelfEvaluation *service.SelfEvaluation `json:"selfEvaluation"`

	// minutes, folded into the learning journal
	TimeSpent int `json:"timeSpent"`
}

// CompleteActivity godoc
// @Summary 활동 완료 기록
// @Description 활동 유형별 결과를 저장하고 완료 처리합니다
// @Tags 학습 진도
// @Accept json
// @Produce json
// @Param activityId path string true "활동 ID"
// @Param body body CompleteActivityRequest true "활동 결과"
// @Success 200 {object} util.Response{data=model.ActivityProgress}
// @Failure 400 {object} util.Response
// @Router /api/progress/{activityId}/complete [post]
func (c *ProgressController) CompleteActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	activityID := ctx.Param("activityId")

	var req CompleteActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var (
		progress *model.ActivityProgress
		err      error
	)
	switch req.Type {
	case model.ActivityVocabulary:
		progress, err = c.ProgressService.CompleteVocabulary(claims.UserID, activityID, req.WeekID, req.WordsMastered, req.TotalWords, req.QuizScore)
	case model.ActivityReading:
		progress, err = c.ProgressService.CompleteReading(claims.UserID, activityID, req.WeekID, req.ReadingTime, req.WPM, req.ComprehensionScore, req.QuestionsAnswered, req.TotalQuestions)
	case model.ActivityGrammar:
		progress, err = c.ProgressService.CompleteGrammar(claims.UserID, activityID, req.WeekID, req.ExercisesCompleted, req.TotalExercises, req.CorrectAnswers, req.TotalAttempts, req.WeakPoints)
	case model.ActivityListening:
		progress, err = c.ProgressService.CompleteListening(claims.UserID, activityID, req.WeekID, req.ListenCount, req.TranscriptViewed, req.DictationScore, req.ComprehensionScore, req.AverageSpeed)
	case model.ActivityWriting:
		progress, err = c.ProgressService.CompleteWriting(claims.UserID, activityID, req.WeekID, req.SubmittedText, req.WordCount, req.WritingTime, req.SelfEvaluation)
	case model.ActivitySpeaking:
		progress, err = c.ProgressService.CompleteSpeaking(claims.UserID, activityID, req.WeekID, req.RecordingsCompleted, req.TotalSentences, req.RecordingDuration, req.Attempts, req.SelfEvaluation)
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	c.afterCompletion(claims.UserID, activityID, req.WeekID, string(req.Type), req.TimeSpent)
	util.Success(ctx, progress)
}

// afterCompletion logs the activity to the journal and re-checks badge
// milestones. Both are best-effort and run off the request path.
func (c *ProgressController) afterCompletion(userID uint, activityID, weekID, activityType string, timeSpent int) {
	title := ""
	if act, err := c.CurriculumService.Activity(activityID); err == nil {
		title = act.Title
	}
	go c.JournalService.LogActivity(userID, model.JournalActivityLog{
		WeekID:        weekID,
		ActivityID:    activityID,
		ActivityTitle: title,
		ActivityType:  activityType,
		TimeSpent:     timeSpent,
		CompletedAt:   time.Now(),
	})
	go func() {
		if overall, err := c.ProgressService.OverallProgress(userID); err == nil {
			c.AchievementService.CheckProgressMilestones(userID, overall)
		}
	}()
}

// GetProgress godoc
// @Summary 활동 진도 조회
// @Tags 학습 진도
// @Produce json
// @Param activityId path string true "활동 ID"
// @Success 200 {object} util.Response{data=model.ActivityProgress}
// @Failure 404 {object} util.Response
// @Router /api/progress/{activityId} [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	progress, err := c.ProgressService.Get(claims.UserID, ctx.Param("activityId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if progress == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, progress)
}

// UpdateProgress godoc
// @Summary 활동 진도 부분 수정
// @Description 이미 존재하는 진도 레코드의 일부 필드만 병합 수정합니다
// @Tags 학습 진도
// @Accept json
// @Produce json
// @Param activityId path string true "활동 ID"
// @Param body body object true "수정할 필드"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/progress/{activityId} [patch]
func (c *ProgressController) UpdateProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var fields map[string]interface{}
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.ProgressService.UpdateFields(claims.UserID, ctx.Param("activityId"), fields)
	if errors.Is(err, util.ErrProgressNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type SaveDraftRequest struct {
	WeekID    string `json:"weekId" binding:"required"`
	Draft     string `json:"draft"`
	WordCount int    `json:"wordCount" binding:"omitempty,min=0"`
}

// SaveDraft godoc
// @Summary 작문 초안 저장
// @Tags 학습 진도
// @Accept json
// @Produce json
// @Param activityId path string true "활동 ID"
// @Param body body SaveDraftRequest true "초안"
// @Success 200 {object} util.Response
// @Router /api/progress/{activityId}/draft [put]
func (c *ProgressController) SaveDraft(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req SaveDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProgressService.SaveWritingDraft(claims.UserID, ctx.Param("activityId"), req.WeekID, req.Draft, req.WordCount); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type counterRequest struct {
	WeekID string `json:"weekId" binding:"required"`
}

// IncrementListen godoc
// @Summary 듣기 횟수 증가
// @Tags 학습 진도
// @Accept json
// @Produce json
// @Param activityId path string true "활동 ID"
// @Param body body counterRequest true "주차"
// @Success 200 {object} util.Response
// @Router /api/progress/{activityId}/listen [post]
func (c *ProgressController) IncrementListen(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req counterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProgressService.IncrementListenCount(claims.UserID, ctx.Param("activityId"), req.WeekID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// IncrementAttempts godoc
// @Summary 말하기 시도 횟수 증가
// @Tags 학습 진도
// @Accept json
// @Produce json
// @Param activityId path string true "활동 ID"
// @Param body body counterRequest true "주차"
// @Success 200 {object} util.Response
// @Router /api/progress/{activityId}/attempts [post]
func (c *ProgressController) IncrementAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req counterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProgressService.IncrementSpeakingAttempts(claims.UserID, ctx.Param("activityId"), req.WeekID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetWeekProgress godoc
// @Summary 주차 진도 집계
// @Tags 학습 진도
// @Produce json
// @Param weekId path string true "주차 ID (week-1 ~ week-8)"
// @Success 200 {object} util.Response{data=service.WeekProgress}
// @Failure 404 {object} util.Response
// @Router /api/progress/weeks/{weekId} [get]
func (c *ProgressController) GetWeekProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	week, err := c.ProgressService.WeekProgress(claims.UserID, ctx.Param("weekId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if week == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, week)
}

// GetOverallProgress godoc
// @Summary 전체 진도 집계
// @Tags 학습 진도
// @Produce json
// @Success 200 {object} util.Response{data=service.OverallProgress}
// @Router /api/progress [get]
func (c *ProgressController) GetOverallProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	overall, err := c.ProgressService.OverallProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overall)
}
