package silver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"customer_analytics/internal/domain/analytics"
	"customer_analytics/pkg/logger"
)

// MockBronzeReader is a mock for the BronzeReader interface.
type MockBronzeReader struct {
	mock.Mock
}

func (m *MockBronzeReader) Load(ctx context.Context) (*analytics.Bronze, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.Bronze), args.Error(1)
}

// MockSilverStore is a mock for the SilverStore interface.
type MockSilverStore struct {
	mock.Mock
}

func (m *MockSilverStore) SaveFactOrders(ctx context.Context, rows []analytics.FactOrder) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockSilverStore) SaveRFM(ctx context.Context, records []analytics.RFMRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockSilverStore) SaveCustomerSummaries(ctx context.Context, summaries []analytics.CustomerSummary) error {
	args := m.Called(ctx, summaries)
	return args.Error(0)
}

func (m *MockSilverStore) LoadFactOrders(ctx context.Context) ([]analytics.FactOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.FactOrder), args.Error(1)
}

func (m *MockSilverStore) LoadRFM(ctx context.Context) ([]analytics.RFMRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.RFMRecord), args.Error(1)
}

func (m *MockSilverStore) LoadCustomerSummaries(ctx context.Context) ([]analytics.CustomerSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.CustomerSummary), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...logger.Field) {}
func (nopLogger) Info(string, ...logger.Field)  {}
func (nopLogger) Warn(string, ...logger.Field)  {}
func (nopLogger) Error(string, ...logger.Field) {}
func (nopLogger) Fatal(string, ...logger.Field) {}

func (n nopLogger) WithFields(...logger.Field) logger.Logger { return n }
func (nopLogger) Sync() error                                { return nil }

// serviceBronzeFixture is the smallest snapshot that survives the full stage:
// five delivered orders for five customers with distinct recency and spend.
func serviceBronzeFixture() *analytics.Bronze {
	bronze := &analytics.Bronze{}
	for c := 1; c <= 5; c++ {
		orderID := fmt.Sprintf("o%d", c)
		bronze.Orders = append(bronze.Orders, analytics.Order{
			OrderID:           orderID,
			CustomerID:        fmt.Sprintf("c%d", c),
			Status:            "delivered",
			PurchaseTimestamp: fmt.Sprintf("2018-05-%02d 10:00:00", c),
		})
		bronze.Customers = append(bronze.Customers, analytics.Customer{
			CustomerID:       fmt.Sprintf("c%d", c),
			CustomerUniqueID: fmt.Sprintf("u%d", c),
		})
		bronze.OrderItems = append(bronze.OrderItems, analytics.OrderItem{
			OrderID:      orderID,
			OrderItemID:  "1",
			Price:        analytics.Float64(float64(10 * c)),
			FreightValue: analytics.Float64(2),
		})
	}
	return bronze
}

func TestService_Run_Success(t *testing.T) {
	mockBronze := new(MockBronzeReader)
	mockStore := new(MockSilverStore)
	service := NewService(mockBronze, mockStore, nopLogger{})

	ctx := context.Background()
	mockBronze.On("Load", ctx).Return(serviceBronzeFixture(), nil)
	mockStore.On("SaveFactOrders", ctx, mock.MatchedBy(func(rows []analytics.FactOrder) bool {
		return len(rows) == 5
	})).Return(nil)
	mockStore.On("SaveRFM", ctx, mock.MatchedBy(func(records []analytics.RFMRecord) bool {
		return len(records) == 5
	})).Return(nil)
	mockStore.On("SaveCustomerSummaries", ctx, mock.MatchedBy(func(summaries []analytics.CustomerSummary) bool {
		return len(summaries) == 5
	})).Return(nil)

	err := service.Run(ctx)

	require.NoError(t, err)
	mockBronze.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

func TestService_Run_LoadError(t *testing.T) {
	mockBronze := new(MockBronzeReader)
	mockStore := new(MockSilverStore)
	service := NewService(mockBronze, mockStore, nopLogger{})

	ctx := context.Background()
	loadErr := errors.New("orders.csv: no such file")
	mockBronze.On("Load", ctx).Return(nil, loadErr)

	err := service.Run(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, loadErr)
	mockStore.AssertNotCalled(t, "SaveFactOrders", mock.Anything, mock.Anything)
}

func TestService_Run_RFMFailureWritesNothing(t *testing.T) {
	mockBronze := new(MockBronzeReader)
	mockStore := new(MockSilverStore)
	service := NewService(mockBronze, mockStore, nopLogger{})

	// Two customers cannot fill five quintiles, so the stage must abort
	// before any silver table is written.
	bronze := serviceBronzeFixture()
	bronze.Orders = bronze.Orders[:2]
	bronze.Customers = bronze.Customers[:2]
	bronze.OrderItems = bronze.OrderItems[:2]

	ctx := context.Background()
	mockBronze.On("Load", ctx).Return(bronze, nil)

	err := service.Run(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rfm")
	mockStore.AssertNotCalled(t, "SaveFactOrders", mock.Anything, mock.Anything)
	mockStore.AssertNotCalled(t, "SaveRFM", mock.Anything, mock.Anything)
	mockStore.AssertNotCalled(t, "SaveCustomerSummaries", mock.Anything, mock.Anything)
}

func TestService_Run_SaveError(t *testing.T) {
	mockBronze := new(MockBronzeReader)
	mockStore := new(MockSilverStore)
	service := NewService(mockBronze, mockStore, nopLogger{})

	ctx := context.Background()
	saveErr := errors.New("disk full")
	mockBronze.On("Load", ctx).Return(serviceBronzeFixture(), nil)
	mockStore.On("SaveFactOrders", ctx, mock.Anything).Return(saveErr)

	err := service.Run(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, saveErr)
	mockStore.AssertNotCalled(t, "SaveRFM", mock.Anything, mock.Anything)
}
