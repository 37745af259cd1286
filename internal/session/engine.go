package session

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mmc/internal/progress"
	"mmc/internal/question"
)

// State is the session lifecycle: Idle until a theme or exam starts,
// InProgress while questions remain, Completed once the queue is
// exhausted or the exam timer expires. Reshuffle moves a Completed
// session back to InProgress with a fresh permutation of the same set.
type State int

const (
	// Idle means no active session.
	Idle State = iota
	// InProgress means a question queue is being worked through.
	InProgress
	// Completed means the queue is exhausted or the exam expired.
	Completed
)

// ExamConfig fixes the exam mix and its wall-clock limit.
type ExamConfig struct {
	TF       int
	QCM      int
	Duration time.Duration
}

// Clock reports the current time; swapped for a fake in timer tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Feedback is the result of answering one question. In exam mode the
// outcome is withheld: Deferred is set and the remaining fields are
// zeroed until the final summary.
type Feedback struct {
	QuestionID  int
	Correct     bool
	CorrectText string
	Explication string
	Deferred    bool
}

// Summary describes a completed session.
type Summary struct {
	Theme   string
	Exam    bool
	Expired bool
	Score   int
	Total   int
	Results []Feedback
}

// Options wires an engine to its collaborators.
type Options struct {
	Questions *question.Store
	Progress  *progress.Store
	History   *progress.History
	Logger    *zap.Logger
	Clock     Clock
	Rand      *rand.Rand
	Exam      ExamConfig
}

// Engine selects and shuffles questions, scores answers, and records
// attempts. It is owned by the trainer UI for the lifetime of a session.
type Engine struct {
	questions *question.Store
	progress  *progress.Store
	history   *progress.History
	logger    *zap.Logger
	clock     Clock
	rng       *rand.Rand
	examCfg   ExamConfig

	state      State
	runID      string
	theme      string
	exam       bool
	deadline   time.Time
	queue      []question.Question
	idx        int
	score      int
	answered   bool
	results    []Feedback
	summary    Summary
	persistErr error
}

// NewEngine builds an engine. Logger, Clock, and Rand default to a nop
// logger, the system clock, and a time-seeded source.
func NewEngine(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	examCfg := opts.Exam
	if examCfg.TF < 0 {
		examCfg.TF = 0
	}
	if examCfg.QCM < 0 {
		examCfg.QCM = 0
	}
	if examCfg.TF == 0 && examCfg.QCM == 0 {
		examCfg.TF = 3
		examCfg.QCM = 3
	}
	if examCfg.Duration <= 0 {
		examCfg.Duration = 10 * time.Minute
	}
	return &Engine{
		questions: opts.Questions,
		progress:  opts.Progress,
		history:   opts.History,
		logger:    logger,
		clock:     clock,
		rng:       rng,
		examCfg:   examCfg,
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// RunID identifies the active session in the attempt history.
func (e *Engine) RunID() string { return e.runID }

// Theme returns the active thematic, empty in exam mode.
func (e *Engine) Theme() string { return e.theme }

// Exam reports whether the session is a timed exam.
func (e *Engine) Exam() bool { return e.exam }

// Start begins a themed session over a shuffled permutation of exactly
// that theme's questions.
func (e *Engine) Start(theme string) error {
	pool := e.questions.ByTheme(theme)
	if len(pool) == 0 {
		return fmt.Errorf("no questions for thematic %q", theme)
	}
	e.begin(theme, false, e.shuffled(pool))
	return nil
}

// StartExam begins a timed exam with a fixed TF+QCM mix sampled across
// all thematics.
func (e *Engine) StartExam() error {
	tf, err := e.sample(question.CategoryTF, e.examCfg.TF)
	if err != nil {
		return err
	}
	qcm, err := e.sample(question.CategoryQCM, e.examCfg.QCM)
	if err != nil {
		return err
	}
	mix := e.shuffled(append(tf, qcm...))
	e.begin("", true, mix)
	e.deadline = e.clock.Now().Add(e.examCfg.Duration)
	return nil
}

func (e *Engine) begin(theme string, exam bool, queue []question.Question) {
	e.state = InProgress
	e.runID = uuid.NewString()
	e.theme = theme
	e.exam = exam
	e.deadline = time.Time{}
	e.queue = queue
	e.idx = 0
	e.score = 0
	e.answered = false
	e.results = nil
	e.summary = Summary{}
	e.persistErr = nil
	e.logger.Info("session started",
		zap.String("run_id", e.runID),
		zap.String("thematic", theme),
		zap.Bool("exam", exam),
		zap.Int("questions", len(queue)),
	)
}

// Current returns the question at the cursor.
func (e *Engine) Current() (question.Question, bool) {
	if e.state != InProgress || e.idx >= len(e.queue) {
		return question.Question{}, false
	}
	return e.queue[e.idx], true
}

// Position returns the 1-based cursor and the queue length.
func (e *Engine) Position() (current, total int) {
	return e.idx + 1, len(e.queue)
}

// Score returns correct answers over answered questions so far.
func (e *Engine) Score() (score, answered int) {
	return e.score, len(e.results)
}

// Answered reports whether the current question has been scored.
func (e *Engine) Answered() bool { return e.answered }

// Answer scores the selected choice index, records the attempt, and
// returns feedback. Exam feedback is deferred to the summary.
func (e *Engine) Answer(choice int) (Feedback, error) {
	if e.state != InProgress {
		return Feedback{}, fmt.Errorf("no question in progress")
	}
	if e.answered {
		return Feedback{}, fmt.Errorf("question already answered")
	}
	q := e.queue[e.idx]
	choices := q.ChoiceTexts()
	if choice < 0 || choice >= len(choices) {
		return Feedback{}, fmt.Errorf("choice %d out of range", choice)
	}

	correct := q.Check(choice)
	if correct {
		e.score++
	}
	e.answered = true
	feedback := Feedback{
		QuestionID:  q.ID,
		Correct:     correct,
		CorrectText: q.CorrectText(),
		Explication: q.Explication,
	}
	e.results = append(e.results, feedback)
	e.record(q, correct)

	if e.exam {
		return Feedback{QuestionID: q.ID, Deferred: true}, nil
	}
	return feedback, nil
}

// record updates the progress map and appends to the attempt history.
// Failures are logged and remembered but never abort the session.
func (e *Engine) record(q question.Question, correct bool) {
	now := e.clock.Now()
	if e.progress != nil {
		if err := e.progress.RecordAttempt(q.ID, correct, now); err != nil {
			e.persistErr = err
			e.logger.Warn("progress write failed",
				zap.Int("question_id", q.ID),
				zap.Error(err),
			)
		}
	}
	if e.history != nil {
		err := e.history.Append(progress.Attempt{
			RunID:      e.runID,
			QuestionID: q.ID,
			Thematic:   q.Thematic,
			Category:   string(q.Category),
			Correct:    correct,
			Exam:       e.exam,
			AnsweredAt: now,
		})
		if err != nil {
			e.persistErr = err
			e.logger.Warn("history append failed",
				zap.Int("question_id", q.ID),
				zap.Error(err),
			)
		}
	}
}

// PersistWarning returns the most recent persistence failure, if any.
func (e *Engine) PersistWarning() error { return e.persistErr }

// Next advances past an answered question; exhausting the queue
// completes the session.
func (e *Engine) Next() error {
	if e.state != InProgress {
		return fmt.Errorf("no session in progress")
	}
	if !e.answered {
		return fmt.Errorf("current question not answered")
	}
	e.idx++
	e.answered = false
	if e.idx >= len(e.queue) {
		e.complete(false)
	}
	return nil
}

// Reshuffle restarts a completed session with a new permutation of the
// same question set. Exam reshuffles restart the timer.
func (e *Engine) Reshuffle() error {
	if e.state != Completed {
		return fmt.Errorf("session is not completed")
	}
	queue := e.shuffled(e.queue)
	theme, exam := e.theme, e.exam
	e.begin(theme, exam, queue)
	if exam {
		e.deadline = e.clock.Now().Add(e.examCfg.Duration)
	}
	return nil
}

// Deadline returns the exam deadline, if one is armed.
func (e *Engine) Deadline() (time.Time, bool) {
	if !e.exam || e.state != InProgress {
		return time.Time{}, false
	}
	return e.deadline, true
}

// Remaining returns the time left on the exam clock.
func (e *Engine) Remaining() time.Duration {
	deadline, ok := e.Deadline()
	if !ok {
		return 0
	}
	remaining := deadline.Sub(e.clock.Now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ExpireIfDue force-completes an exam whose deadline has passed and
// reports whether it did so.
func (e *Engine) ExpireIfDue() bool {
	if e.state != InProgress || !e.exam {
		return false
	}
	if e.clock.Now().Before(e.deadline) {
		return false
	}
	e.complete(true)
	return true
}

func (e *Engine) complete(expired bool) {
	e.state = Completed
	e.summary = Summary{
		Theme:   e.theme,
		Exam:    e.exam,
		Expired: expired,
		Score:   e.score,
		Total:   len(e.queue),
		Results: append([]Feedback(nil), e.results...),
	}
	e.logger.Info("session completed",
		zap.String("run_id", e.runID),
		zap.Bool("expired", expired),
		zap.Int("score", e.score),
		zap.Int("total", len(e.queue)),
	)
}

// Summary returns the completed session's result.
func (e *Engine) Summary() (Summary, bool) {
	if e.state != Completed {
		return Summary{}, false
	}
	return e.summary, true
}

// shuffled returns a new permutation without mutating the input.
func (e *Engine) shuffled(pool []question.Question) []question.Question {
	out := append([]question.Question(nil), pool...)
	e.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// sample draws count questions of one category across all thematics.
func (e *Engine) sample(category question.Category, count int) ([]question.Question, error) {
	pool := e.questions.ByCategory(category)
	if len(pool) < count {
		return nil, fmt.Errorf("exam needs %d %s questions, bank has %d", count, category, len(pool))
	}
	return e.shuffled(pool)[:count], nil
}
