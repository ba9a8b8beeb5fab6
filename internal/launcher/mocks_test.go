package launcher

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"alicia-launcher/internal/domain"
	"alicia-launcher/internal/process"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(id string, info domain.WebInfo) error {
	return m.Called(id, info).Error(0)
}

func (m *mockPublisher) Release() {
	m.Called()
}

func (m *mockPublisher) ID() string {
	return m.Called().String(0)
}

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Start(cmd process.Command) (process.Process, error) {
	args := m.Called(cmd)
	p, _ := args.Get(0).(process.Process)
	return p, args.Error(1)
}

type mockProcess struct {
	mock.Mock
}

func (m *mockProcess) Pid() int {
	return 4242
}

func (m *mockProcess) Wait(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockProcess) Stop() error {
	return m.Called().Error(0)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) RecordPublication(duration time.Duration, err error) {
	m.Called(duration, err)
}

func (m *mockMetrics) RecordRelease() {
	m.Called()
}

func (m *mockMetrics) RecordLaunch(err error) {
	m.Called(err)
}

func (m *mockMetrics) RecordGameExit(exitCode int) {
	m.Called(exitCode)
}
