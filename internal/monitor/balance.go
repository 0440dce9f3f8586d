package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"
	
	"github.com/dustin/go-humanize"
	"github.com/go-co-op/gocron/v2"
	"github.com/katatrina/notify-admin/internal/sms"
	"github.com/rs/zerolog/log"
)

const checkTimeout = 30 * time.Second

type BalanceProvider interface {
	GetBalance(ctx context.Context) (*sms.Balance, error)
}

type Alerter interface {
	Send(ctx context.Context, content string) error
}

// BalanceMonitor periodically checks the SMS gateway credit and raises an
// alert once when it drops below the threshold.
type BalanceMonitor struct {
	provider  BalanceProvider
	alerter   Alerter
	threshold float64
	interval  time.Duration
	scheduler gocron.Scheduler
	
	mu      sync.Mutex
	alerted bool
	last    *sms.Balance
}

func NewBalanceMonitor(provider BalanceProvider, alerter Alerter, threshold float64, interval time.Duration) (*BalanceMonitor, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	
	return &BalanceMonitor{
		provider:  provider,
		alerter:   alerter,
		threshold: threshold,
		interval:  interval,
		scheduler: scheduler,
	}, nil
}

// Start schedules the balance check and runs it once right away.
func (m *BalanceMonitor) Start() error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(m.interval),
		gocron.NewTask(
			func() {
				ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
				defer cancel()
				
				if err := m.Check(ctx); err != nil {
					log.Error().Err(err).Str("job", "sms_balance").Msg("sms balance check failed")
				}
			},
		),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}
	
	m.scheduler.Start()
	return nil
}

func (m *BalanceMonitor) Stop() error {
	return m.scheduler.Shutdown()
}

// Check fetches the current balance and alerts when it crosses below the
// threshold. The alert is re-armed once the balance recovers.
func (m *BalanceMonitor) Check(ctx context.Context) error {
	balance, err := m.provider.GetBalance(ctx)
	if err != nil {
		return fmt.Errorf("failed to get sms balance: %w", err)
	}
	
	m.mu.Lock()
	m.last = balance
	low := balance.Credit < m.threshold
	shouldAlert := low && !m.alerted
	m.alerted = low
	m.mu.Unlock()
	
	log.Info().Str("job", "sms_balance").Str("credit", humanize.Commaf(balance.Credit)).Msg("sms balance checked")
	
	if !shouldAlert {
		return nil
	}
	
	message := fmt.Sprintf("📉 SMS credit is low: %s remaining (threshold %s).",
		humanize.Commaf(balance.Credit), humanize.Commaf(m.threshold))
	if err = m.alerter.Send(ctx, message); err != nil {
		// try again on the next run
		m.mu.Lock()
		m.alerted = false
		m.mu.Unlock()
		return err
	}
	
	return nil
}

// LastBalance returns the most recent successful reading, or nil before the first one.
func (m *BalanceMonitor) LastBalance() *sms.Balance {
	m.mu.Lock()
	defer m.mu.Unlock()
	
	return m.last
}
