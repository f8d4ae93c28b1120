package service

import (
	"testing"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB) OrderService {
	return NewOrderService(
		repository.NewOrderRepo(db),
		repository.NewProductRepo(db),
		repository.NewClientRepo(db),
		db,
		testAuditor(db),
	)
}

func TestCreateOrderChecksStockWithoutReserving(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	client := seedClient(t, db, "Acme", model.ClientActive)
	product := seedProduct(t, db, "Widget", 5, 80, 120)

	order, err := svc.Create(&CreateOrderInput{
		ClientID: client.ID,
		Items:    []OrderItemInput{{ProductID: product.ID, Quantity: 3}},
	}, "tester")
	require.NoError(t, err)
	require.Equal(t, model.OrderPending, order.Status)
	require.EqualValues(t, 360, order.Total)

	// Creation is a check only; stock stays put until payment.
	require.Equal(t, 5, productStock(t, db, product))

	_, err = svc.Create(&CreateOrderInput{
		ClientID: client.ID,
		Items:    []OrderItemInput{{ProductID: product.ID, Quantity: 6}},
	}, "tester")
	var insufficient *apperr.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
}

func TestOrderPaidDecrementsExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	client := seedClient(t, db, "Acme", model.ClientActive)
	product := seedProduct(t, db, "Widget", 5, 80, 120)

	order, err := svc.Create(&CreateOrderInput{
		ClientID: client.ID,
		Items:    []OrderItemInput{{ProductID: product.ID, Quantity: 3}},
	}, "tester")
	require.NoError(t, err)

	paid, err := svc.UpdateStatus(order.ID, model.OrderPaid, "tester")
	require.NoError(t, err)
	require.Equal(t, model.OrderPaid, paid.Status)
	require.Equal(t, 2, productStock(t, db, product))

	// A second payment call rejects and leaves stock unchanged.
	_, err = svc.UpdateStatus(order.ID, model.OrderPaid, "tester")
	var terminal *apperr.TerminalTransitionError
	require.ErrorAs(t, err, &terminal)
	require.Equal(t, 2, productStock(t, db, product))
}

func TestOrderPaidToCancelledRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	client := seedClient(t, db, "Acme", model.ClientActive)
	product := seedProduct(t, db, "Widget", 5, 80, 120)

	order, err := svc.Create(&CreateOrderInput{
		ClientID: client.ID,
		Items:    []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	}, "tester")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(order.ID, model.OrderPaid, "tester")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, model.OrderCancelled, "tester")
	var terminal *apperr.TerminalTransitionError
	require.ErrorAs(t, err, &terminal)
	require.Equal(t, model.OrderPaid, terminal.From)
	require.Equal(t, model.OrderCancelled, terminal.To)
}

func TestCancelledOrderIsTerminal(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	client := seedClient(t, db, "Acme", model.ClientActive)
	product := seedProduct(t, db, "Widget", 5, 80, 120)

	order, err := svc.Create(&CreateOrderInput{
		ClientID: client.ID,
		Items:    []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	}, "tester")
	require.NoError(t, err)

	cancelled, err := svc.UpdateStatus(order.ID, model.OrderCancelled, "tester")
	require.NoError(t, err)
	require.Equal(t, model.OrderCancelled, cancelled.Status)
	// Nothing was reserved at creation, so nothing is released.
	require.Equal(t, 5, productStock(t, db, product))

	var terminal *apperr.TerminalTransitionError
	for _, next := range []string{model.OrderPending, model.OrderPaid, "shipped"} {
		_, err = svc.UpdateStatus(order.ID, next, "tester")
		require.ErrorAs(t, err, &terminal, "transition cancelled -> %s must reject", next)
	}
}

func TestOrderFreeFormStatusesPass(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	client := seedClient(t, db, "Acme", model.ClientActive)
	product := seedProduct(t, db, "Widget", 5, 80, 120)

	order, err := svc.Create(&CreateOrderInput{
		ClientID: client.ID,
		Items:    []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	}, "tester")
	require.NoError(t, err)

	shipped, err := svc.UpdateStatus(order.ID, "shipped", "tester")
	require.NoError(t, err)
	require.Equal(t, "shipped", shipped.Status)
	require.Equal(t, 5, productStock(t, db, product))
}

func TestOrderPaymentRechecksStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	client := seedClient(t, db, "Acme", model.ClientActive)
	product := seedProduct(t, db, "Widget", 5, 80, 120)

	order, err := svc.Create(&CreateOrderInput{
		ClientID: client.ID,
		Items:    []OrderItemInput{{ProductID: product.ID, Quantity: 5}},
	}, "tester")
	require.NoError(t, err)

	// A sale in the window between creation and payment consumes part
	// of the stock the order counted on.
	saleSvc := newSaleService(db)
	_, err = saleSvc.Create(&CreateSaleInput{
		ClientID: client.ID,
		Items:    []SaleItemInput{{ProductID: product.ID, Quantity: 3}},
	}, "tester")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, model.OrderPaid, "tester")
	var insufficient *apperr.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, "Widget", insufficient.Product)

	// The rejected payment leaves both stock and the order untouched.
	require.Equal(t, 2, productStock(t, db, product))
	reloaded, err := svc.GetByID(order.ID)
	require.NoError(t, err)
	require.Equal(t, model.OrderPending, reloaded.Status)
}

func TestCreateOrderInactiveClientRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	client := seedClient(t, db, "Dormant Co", model.ClientInactive)
	product := seedProduct(t, db, "Widget", 5, 80, 120)

	_, err := svc.Create(&CreateOrderInput{
		ClientID: client.ID,
		Items:    []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	}, "tester")
	var validation *apperr.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	_, err := svc.UpdateStatus(42, model.OrderPaid, "tester")
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	client := seedClient(t, db, "Acme", model.ClientActive)

	_, err := svc.Create(&CreateOrderInput{
		ClientID: client.ID,
		Items:    []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
	}, "tester")
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
