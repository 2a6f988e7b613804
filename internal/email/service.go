package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rsydfhmy03/SEA-Catering/internal/logger"
	"github.com/rsydfhmy03/SEA-Catering/internal/metrics"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3
)

type Job struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Options struct {
	From     string
	FromName string
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Service struct {
	redis      *redis.Client
	opts       Options
	send       sendFunc
	retryDelay time.Duration
	popTimeout time.Duration
	// errorBackoff paces the worker while redis is unreachable.
	errorBackoff time.Duration
}

func New(opts Options, redisAddr string) *Service {
	return NewWithClient(redis.NewClient(&redis.Options{
		Addr: redisAddr,
	}), opts)
}

func NewWithClient(rdb *redis.Client, opts Options) *Service {
	return &Service{
		redis:      rdb,
		opts:       opts,
		send:       smtp.SendMail,
		retryDelay:   5 * time.Second,
		popTimeout:   2 * time.Second,
		errorBackoff: time.Second,
	}
}

// Ping checks the queue backend.
func (s *Service) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

// Check pings redis and refreshes the queue length gauge. It backs the
// readiness probe.
func (s *Service) Check(ctx context.Context) error {
	if err := s.Ping(ctx); err != nil {
		return err
	}
	_, err := s.QueueLength(ctx)
	return err
}

func (s *Service) enqueue(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		metrics.RecordEmail(job.Type, "enqueue_failed")
		logger.Error("failed to queue email", "type", job.Type, "error", err)
		return err
	}

	metrics.RecordEmail(job.Type, "queued")
	logger.Info("email queued", "type", job.Type, "subject", job.Subject)
	return nil
}

func (s *Service) Send(ctx context.Context, emailType, to, name, subject, body string) error {
	return s.enqueue(ctx, Job{
		Type:    emailType,
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	})
}

// Start drains the queue until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("Email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, s.popTimeout, queueKey).Result()
	if err != nil {
		// redis.Nil is an empty queue after popTimeout
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			logger.Error("email queue unavailable", "error", err)
			sleep(ctx, s.errorBackoff)
		}
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	logger.Debugf("Sending %s email (attempt %d)", job.Type, job.Tries)
	if err := s.deliver(job); err != nil {
		logger.Error("failed to send email", "type", job.Type, "attempt", job.Tries, "error", err)

		if job.Tries < maxTries {
			s.retry(ctx, job)
		} else {
			metrics.RecordEmail(job.Type, "failed")
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Info("email sent", "type", job.Type)
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func (s *Service) retry(ctx context.Context, job Job) {
	sleep(ctx, s.retryDelay)

	data, _ := json.Marshal(job)
	s.redis.LPush(context.Background(), queueKey, string(data))
	logger.Infof("Retrying %s email (attempt %d)", job.Type, job.Tries+1)
}

func (s *Service) deliver(job Job) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.opts.FromName, s.opts.From)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n"
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.opts.SMTPUser != "" && s.opts.SMTPPass != "" {
		auth = smtp.PlainAuth("", s.opts.SMTPUser, s.opts.SMTPPass, s.opts.SMTPHost)
	}

	addr := s.opts.SMTPHost + ":" + s.opts.SMTPPort
	return s.send(addr, auth, s.opts.From, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, string(data))
	logger.Error("email moved to failed queue", "type", job.Type)
}

// QueueLength reports the pending job count and publishes it as a gauge.
// The gauge is left untouched when redis cannot be read.
func (s *Service) QueueLength(ctx context.Context) (int64, error) {
	length, err := s.redis.LLen(ctx, queueKey).Result()
	if err != nil {
		return 0, err
	}
	metrics.SetEmailQueueLength(length)
	return length, nil
}

func (s *Service) Close() error {
	return s.redis.Close()
}
