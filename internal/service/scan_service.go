package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hugohenrick/erp-estoque/internal/domain/movement"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
)

// ScanState é o estado de uma sessão de leitura rápida
type ScanState string

const (
	ScanIdle            ScanState = "idle"
	ScanScanned         ScanState = "scanned"
	ScanFound           ScanState = "found"
	ScanNotFound        ScanState = "not_found"
	ScanQuantityEntered ScanState = "quantity_entered"
	ScanConfirmed       ScanState = "confirmed"
)

// ScanMode define se a leitura dá entrada ou saída de estoque
type ScanMode string

const (
	ScanModeStockIn  ScanMode = "stock_in"
	ScanModeStockOut ScanMode = "stock_out"
)

// Erros da leitura rápida
var (
	ErrInvalidTransition = errors.New("operação inválida para o estado atual da leitura")
	ErrEmptyBarcode      = errors.New("código de barras é obrigatório")
	ErrInvalidQuantity   = errors.New("quantidade deve ser maior que zero")
	ErrInvalidScanMode   = errors.New("modo de leitura inválido")
	ErrNothingToUndo     = errors.New("nenhuma leitura confirmada para desfazer")
)

// Valid informa se o modo é conhecido
func (m ScanMode) Valid() bool {
	return m == ScanModeStockIn || m == ScanModeStockOut
}

// ScanLookup é o resultado da busca de um código lido
type ScanLookup struct {
	Barcode string           `json:"barcode"`
	State   ScanState        `json:"state"`
	Product *product.Product `json:"product"`
}

// QuickAddInput são os dados do cadastro rápido de um código desconhecido
type QuickAddInput struct {
	Barcode  string
	Name     string
	Category string
	Quantity int
}

// ScanService expõe as etapas da leitura rápida sem manter estado
type ScanService struct {
	products *ProductService
	stock    *StockService
}

// NewScanService cria um novo serviço de leitura rápida
func NewScanService(products *ProductService, stock *StockService) *ScanService {
	return &ScanService{products: products, stock: stock}
}

// Lookup busca o produto pelo código lido
func (s *ScanService) Lookup(ctx context.Context, tenantID, barcode string) (*ScanLookup, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, ErrEmptyBarcode
	}
	p, err := s.products.FindByBarcode(ctx, tenantID, barcode)
	if errors.Is(err, product.ErrProductNotFound) {
		return &ScanLookup{Barcode: barcode, State: ScanNotFound}, nil
	}
	if err != nil {
		return nil, err
	}
	return &ScanLookup{Barcode: barcode, State: ScanFound, Product: p}, nil
}

// Confirm aplica a entrada ou saída da quantidade lida
func (s *ScanService) Confirm(ctx context.Context, actor Actor, productID string, mode ScanMode, quantity int) (*movement.Movement, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	switch mode {
	case ScanModeStockIn:
		return s.stock.StockIn(ctx, actor, productID, quantity, "Quick scan")
	case ScanModeStockOut:
		return s.stock.StockOut(ctx, actor, productID, quantity, "Quick scan")
	default:
		return nil, ErrInvalidScanMode
	}
}

// QuickAdd cadastra um produto a partir de um código desconhecido com SKU gerado
func (s *ScanService) QuickAdd(ctx context.Context, actor Actor, in QuickAddInput) (*product.Product, error) {
	barcode := strings.TrimSpace(in.Barcode)
	if barcode == "" {
		return nil, ErrEmptyBarcode
	}
	if in.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	category := product.CanonicalCategory(in.Category)
	return s.products.Create(ctx, actor, product.Attributes{
		Name:     in.Name,
		SKU:      s.products.SuggestSKU(category),
		Barcode:  &barcode,
		Quantity: in.Quantity,
		Category: category,
	})
}

// Undo desfaz uma movimentação confirmada aplicando a inversa
func (s *ScanService) Undo(ctx context.Context, actor Actor, movementID string) (*movement.Movement, error) {
	return s.stock.Revert(ctx, actor, movementID)
}

// ScanSession conduz uma leitura pelos estados
// idle → scanned → found|not_found → quantity_entered → confirmed.
// Cancel volta para idle de qualquer estado.
type ScanSession struct {
	service  *ScanService
	actor    Actor
	mode     ScanMode
	state    ScanState
	barcode  string
	product  *product.Product
	quantity int
	last     *movement.Movement
}

// NewSession inicia uma sessão de leitura no modo informado
func (s *ScanService) NewSession(actor Actor, mode ScanMode) (*ScanSession, error) {
	if !mode.Valid() {
		return nil, ErrInvalidScanMode
	}
	return &ScanSession{service: s, actor: actor, mode: mode, state: ScanIdle}, nil
}

// State devolve o estado atual
func (ss *ScanSession) State() ScanState { return ss.state }

// Product devolve o produto encontrado na última leitura
func (ss *ScanSession) Product() *product.Product { return ss.product }

// SetMode troca entre entrada e saída; só é permitido antes de informar a quantidade
func (ss *ScanSession) SetMode(mode ScanMode) error {
	if !mode.Valid() {
		return ErrInvalidScanMode
	}
	if ss.state == ScanQuantityEntered {
		return ErrInvalidTransition
	}
	ss.mode = mode
	return nil
}

// Scan registra um código lido e resolve o produto
func (ss *ScanSession) Scan(ctx context.Context, barcode string) (ScanState, error) {
	if ss.state != ScanIdle && ss.state != ScanConfirmed {
		return ss.state, ErrInvalidTransition
	}
	ss.reset()
	ss.barcode = strings.TrimSpace(barcode)
	if ss.barcode == "" {
		return ss.state, ErrEmptyBarcode
	}
	ss.state = ScanScanned

	result, err := ss.service.Lookup(ctx, ss.actor.TenantID, ss.barcode)
	if err != nil {
		ss.reset()
		return ss.state, err
	}
	ss.state = result.State
	ss.product = result.Product
	return ss.state, nil
}

// EnterQuantity informa a quantidade do produto encontrado
func (ss *ScanSession) EnterQuantity(quantity int) error {
	if ss.state != ScanFound && ss.state != ScanQuantityEntered {
		return ErrInvalidTransition
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	ss.quantity = quantity
	ss.state = ScanQuantityEntered
	return nil
}

// Confirm aplica a movimentação; em caso de erro a sessão permanece com a quantidade informada
func (ss *ScanSession) Confirm(ctx context.Context) (*movement.Movement, error) {
	if ss.state != ScanQuantityEntered {
		return nil, ErrInvalidTransition
	}
	m, err := ss.service.Confirm(ctx, ss.actor, ss.product.ID, ss.mode, ss.quantity)
	if err != nil {
		return nil, err
	}
	ss.last = m
	ss.state = ScanConfirmed
	return m, nil
}

// QuickAdd cadastra o código não encontrado e confirma a leitura
func (ss *ScanSession) QuickAdd(ctx context.Context, name, category string, quantity int) (*product.Product, error) {
	if ss.state != ScanNotFound {
		return nil, ErrInvalidTransition
	}
	p, err := ss.service.QuickAdd(ctx, ss.actor, QuickAddInput{
		Barcode:  ss.barcode,
		Name:     name,
		Category: category,
		Quantity: quantity,
	})
	if err != nil {
		return nil, err
	}
	ss.product = p
	ss.last = nil
	ss.state = ScanConfirmed
	return p, nil
}

// Undo desfaz a última movimentação confirmada
func (ss *ScanSession) Undo(ctx context.Context) (*movement.Movement, error) {
	if ss.last == nil {
		return nil, ErrNothingToUndo
	}
	m, err := ss.service.Undo(ctx, ss.actor, ss.last.ID)
	if err != nil {
		return nil, err
	}
	ss.last = nil
	ss.reset()
	return m, nil
}

// Cancel descarta a leitura em andamento
func (ss *ScanSession) Cancel() {
	ss.reset()
}

func (ss *ScanSession) reset() {
	ss.state = ScanIdle
	ss.barcode = ""
	ss.product = nil
	ss.quantity = 0
}
