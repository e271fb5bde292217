package dto

// ScanLookupRequest representa a leitura de um código
type ScanLookupRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// ScanLookupResponse indica se o código lido pertence a um produto
type ScanLookupResponse struct {
	Barcode string           `json:"barcode"`
	State   string           `json:"state"`
	Product *ProductResponse `json:"product"`
}

// ScanConfirmRequest confirma a quantidade lida para um produto encontrado
type ScanConfirmRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Mode      string `json:"mode" binding:"required,oneof=stock_in stock_out"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=999999"`
}

// QuickAddRequest cadastra um produto a partir de um código desconhecido
type QuickAddRequest struct {
	Barcode  string `json:"barcode" binding:"required,barcode"`
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"max=50"`
	Quantity int    `json:"quantity" binding:"min=0,max=999999"`
}

// ScanUndoRequest desfaz a movimentação da última leitura confirmada
type ScanUndoRequest struct {
	MovementID string `json:"movement_id" binding:"required"`
}

// LabelRequest representa a folha de etiquetas a gerar
type LabelRequest struct {
	ProductIDs   []string `json:"product_ids" binding:"required,min=1"`
	CodeType     string   `json:"code_type" binding:"omitempty,oneof=barcode qrcode"`
	LabelsPerRow int      `json:"labels_per_row" binding:"omitempty,min=1"`
}

// ImportResponse resume uma importação de CSV
type ImportResponse struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}
