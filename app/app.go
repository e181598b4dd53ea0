package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kochabx/keysort/log"
)

var (
	ErrAlreadyStarted = errors.New("application already started")
	ErrClosePanic     = errors.New("close function panicked")
)

// Task 是应用运行的一个工作单元，ctx 在收到关闭信号时取消
type Task struct {
	Name string
	Fn   func(context.Context) error
}

// CloseFunc 具有可选超时的关闭函数
type CloseFunc struct {
	Name    string
	Fn      func(context.Context) error
	Timeout time.Duration
}

// Application 管理任务和关闭函数的生命周期
type Application struct {
	ctx          context.Context
	cancel       context.CancelFunc
	signals      []os.Signal
	tasks        []Task
	closeFuncs   []CloseFunc
	closeTimeout time.Duration
	mu           sync.Mutex
	started      bool
}

type Option func(*Application)

// WithContext 设置应用的根上下文
func WithContext(ctx context.Context) Option {
	return func(app *Application) {
		if ctx != nil {
			app.ctx, app.cancel = context.WithCancel(ctx)
		}
	}
}

// WithCloseTimeout 设置关闭函数的默认超时时间
func WithCloseTimeout(timeout time.Duration) Option {
	return func(app *Application) {
		if timeout > 0 {
			app.closeTimeout = timeout
		}
	}
}

// WithSignals 设置触发取消的信号
func WithSignals(signals ...os.Signal) Option {
	return func(app *Application) {
		if len(signals) > 0 {
			app.signals = append([]os.Signal(nil), signals...)
		}
	}
}

// WithTask 添加任务
func WithTask(name string, fn func(context.Context) error) Option {
	return func(app *Application) {
		if fn == nil {
			log.Warn().Str("name", name).Msg("nil task ignored")
			return
		}
		app.tasks = append(app.tasks, Task{Name: name, Fn: fn})
	}
}

// WithClose 添加在任务结束后执行的关闭函数
func WithClose(name string, fn func(context.Context) error, timeout time.Duration) Option {
	return func(app *Application) {
		if fn == nil {
			log.Warn().Str("name", name).Msg("nil close function ignored")
			return
		}
		app.closeFuncs = append(app.closeFuncs, CloseFunc{Name: name, Fn: fn, Timeout: timeout})
	}
}

// New 使用给定选项创建新的应用实例
func New(options ...Option) *Application {
	app := &Application{
		closeTimeout: 10 * time.Second,
		signals:      []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
	app.ctx, app.cancel = context.WithCancel(context.Background())

	for _, opt := range options {
		opt(app)
	}

	for i := range app.closeFuncs {
		if app.closeFuncs[i].Timeout == 0 {
			app.closeFuncs[i].Timeout = app.closeTimeout
		}
	}

	return app
}

// Run 并发运行所有任务并阻塞直到全部结束、任一失败或收到信号，
// 随后执行关闭函数。返回第一个任务错误
func (app *Application) Run() error {
	app.mu.Lock()
	if app.started {
		app.mu.Unlock()
		return ErrAlreadyStarted
	}
	app.started = true
	tasks := append([]Task(nil), app.tasks...)
	app.mu.Unlock()

	defer app.cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, app.signals...)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
			app.cancel()
		case <-app.ctx.Done():
		}
	}()

	eg, egCtx := errgroup.WithContext(app.ctx)
	for _, task := range tasks {
		eg.Go(func() error {
			log.Debug().Str("task", task.Name).Msg("task starting")
			if err := task.Fn(egCtx); err != nil {
				return err
			}
			log.Debug().Str("task", task.Name).Msg("task finished")
			return nil
		})
	}

	err := eg.Wait()
	app.runCloseTasks()
	return err
}

// Stop 取消正在运行的任务
func (app *Application) Stop() {
	app.cancel()
}

// runCloseTasks 按注册顺序执行所有关闭函数
func (app *Application) runCloseTasks() {
	app.mu.Lock()
	closeFuncs := append([]CloseFunc(nil), app.closeFuncs...)
	app.mu.Unlock()

	for _, c := range closeFuncs {
		_ = app.runCloseTask(c)
	}
}

// runCloseTask 执行单个带超时的关闭函数
func (app *Application) runCloseTask(c CloseFunc) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("close", c.Name).Msg("close function panicked")
				done <- ErrClosePanic
			}
		}()
		done <- c.Fn(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Error().Err(err).Str("close", c.Name).Msg("close function failed")
		}
		return err
	case <-ctx.Done():
		log.Warn().Str("close", c.Name).Msg("close function timed out")
		return ctx.Err()
	}
}
