// Package models defines the wire-level data structures exchanged with the
// storefront REST API. Field tags follow the backend's JSON contract.
package models

// LoginRequest carries the credentials sent to POST /auth/login.
type LoginRequest struct {
	// Email is the account email used as login name.
	Email string `json:"email" validate:"required,email"`
	// Password is the plain-text password; only ever sent over the wire.
	Password string `json:"password" validate:"required"`
}

// RegisterRequest carries the payload sent to POST /auth/register.
// ConfirmPassword never leaves the client; it exists only for the local
// equality precondition.
type RegisterRequest struct {
	// Name is the display name of the new account.
	Name string `json:"nombre" validate:"required"`
	// Email is the account email.
	Email string `json:"email" validate:"required,email"`
	// Password is the chosen password.
	Password string `json:"password" validate:"required,min=6"`
	// ConfirmPassword must equal Password before any network call is made.
	ConfirmPassword string `json:"-" validate:"eqfield=Password"`
}

// UnlockRequest carries the account-unlock / password-reset confirmation
// payload sent to POST /auth/unlock.
type UnlockRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"codigo" validate:"required"`
	NewPassword string `json:"nuevaPassword,omitempty"`
}

// AuthResponse is the profile record returned by login and register.
// The bearer token is opaque to the client; no claims are inspected.
type AuthResponse struct {
	Token string   `json:"token"`
	Name  string   `json:"nombre"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// RoleAdmin is the role name that grants access to the back office.
const RoleAdmin = "Administrador"

// CartLine is one line entry of a cart. Its identity (LineID) is distinct
// from the product it references.
type CartLine struct {
	LineID      int64   `json:"detalleCarritoId"`
	ProductID   int64   `json:"productoId"`
	ProductName string  `json:"productoNombre"`
	Quantity    int     `json:"cantidad"`
	UnitPrice   float64 `json:"precioUnitario"`
	Subtotal    float64 `json:"subtotal"`
}

// Cart is the server-authoritative cart snapshot. Total is always computed
// server-side; the client never aggregates it locally.
type Cart struct {
	CartID int64      `json:"carritoId"`
	UserID int64      `json:"usuarioId"`
	Items  []CartLine `json:"items"`
	Total  float64    `json:"total"`
}

// Personalization describes an optional shirt print (name/number) added to a
// cart line.
type Personalization struct {
	Kind   string  `json:"tipo"` // "Leyenda" or "Custom"
	Name   string  `json:"nombre"`
	Number string  `json:"numero"`
	Price  float64 `json:"precio"`
}

// Patch describes an optional competition patch added to a cart line.
type Patch struct {
	Kind  string  `json:"tipo"` // "UCL" or "LaLiga"
	Price float64 `json:"precio"`
}

// AddItemRequest is the payload of POST /carrito/agregar.
type AddItemRequest struct {
	ProductID       int64            `json:"productoId" validate:"required"`
	Quantity        int              `json:"cantidad" validate:"required,min=1"`
	Personalization *Personalization `json:"personalizacion,omitempty"`
	Patch           *Patch           `json:"parche,omitempty"`
}

// UpdateQuantityRequest is the payload of PUT /carrito/actualizar-cantidad/{id}.
type UpdateQuantityRequest struct {
	Quantity int `json:"cantidad" validate:"required,min=1"`
}

// OrderLine is one line of a placed order.
type OrderLine struct {
	LineID      int64   `json:"detallePedidoId"`
	ProductID   int64   `json:"productoId"`
	ProductName string  `json:"productoNombre"`
	Quantity    int     `json:"cantidad"`
	UnitPrice   float64 `json:"precioUnitario"`
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"montoDescuento"`
}

// Order mirrors the backend's PedidoResponse.
type Order struct {
	OrderID         int64       `json:"pedidoId"`
	Date            string      `json:"fecha"` // ISO 8601 as sent by the server
	Status          string      `json:"estado"`
	Total           float64     `json:"total"`
	Lines           []OrderLine `json:"detalles"`
	ShippingAddress string      `json:"direccionEnvio"`
	ShippingStatus  string      `json:"estadoEnvio"`
	PaymentStatus   string      `json:"estadoPago"`
	PaymentMethod   string      `json:"metodoPago"`
}

// Backend order status enums, used by the admin status dropdowns.
var (
	OrderStatuses    = []string{"PENDIENTE", "PAGADO", "ENVIADO", "ENTREGADO", "CANCELADO"}
	PaymentStatuses  = []string{"PENDIENTE", "COMPLETADO", "FALLIDO"}
	ShippingStatuses = []string{"EN_PREPARACION", "EN_CAMINO", "ENTREGADO", "RETRASADO"}
)

// OrderRequest is the payload of POST /pedidos/crear.
type OrderRequest struct {
	ShippingAddress string `json:"direccionEnvio" validate:"required"`
	PaymentInfo     string `json:"metodoPagoInfo" validate:"required"`
}

// UpdateOrderStatusRequest is the payload of PATCH /admin/pedidos/{id}/estado.
type UpdateOrderStatusRequest struct {
	NewStatus string `json:"nuevoEstado" validate:"required"`
}

// UpdatePaymentStatusRequest is the payload of PATCH /admin/pedidos/{id}/pago.
type UpdatePaymentStatusRequest struct {
	NewStatus string `json:"nuevoEstadoPago" validate:"required"`
}

// UpdateShippingStatusRequest is the payload of PATCH /admin/pedidos/{id}/envio.
type UpdateShippingStatusRequest struct {
	NewStatus string `json:"nuevoEstadoEnvio" validate:"required"`
}

// PromotionSummary is the reduced promotion view embedded in products.
type PromotionSummary struct {
	PromotionID int64   `json:"idPromocion"`
	Code        string  `json:"codigo"`
	Description string  `json:"descripcion"`
	Discount    float64 `json:"descuento"`
	Active      bool    `json:"activa"`
}

// Product mirrors the backend's ProductoResponse, including the promotion
// fields present only when a discount applies.
type Product struct {
	ID           int64   `json:"id"`
	Name         string  `json:"nombre"`
	Description  string  `json:"descripcion"`
	Size         string  `json:"talla"`
	Price        float64 `json:"precio"` // final price, discount applied
	Active       bool    `json:"activo"`
	CategoryName string  `json:"categoriaNombre"`
	Stock        int     `json:"stock"`
	ImageURL     string  `json:"imageUrl,omitempty"`

	OriginalPrice   float64 `json:"precioOriginal,omitempty"`
	AppliedDiscount float64 `json:"descuentoAplicado,omitempty"`
	PromotionName   string  `json:"nombrePromocion,omitempty"`

	Promotions []PromotionSummary `json:"promocionesAsociadas,omitempty"`
}

// ProductRequest is the create/update payload for admin product endpoints.
type ProductRequest struct {
	Name        string  `json:"nombre" validate:"required"`
	Description string  `json:"descripcion"`
	Size        string  `json:"talla" validate:"required,oneof=S M L XL"`
	Price       float64 `json:"precio" validate:"required,gt=0"`
	Active      bool    `json:"activo"`
	CategoryID  int64   `json:"categoriaId" validate:"required"`
}

// UploadResponse is returned after a product image upload.
type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// Promotion is the full promotion record.
type Promotion struct {
	PromotionID int64   `json:"idPromocion"`
	Code        string  `json:"codigo"`
	Description string  `json:"descripcion"`
	Discount    float64 `json:"descuento"`
	StartDate   string  `json:"fechaInicio"`
	EndDate     string  `json:"fechaFin"`
	Active      bool    `json:"activa"`
}

// PromotionRequest is the create/update payload for promotions.
type PromotionRequest struct {
	Code        string  `json:"codigo" validate:"required"`
	Description string  `json:"descripcion"`
	Discount    float64 `json:"descuento" validate:"required,gt=0,lte=100"`
	StartDate   string  `json:"fechaInicio" validate:"required"`
	EndDate     string  `json:"fechaFin" validate:"required"`
	Active      bool    `json:"activa"`
}

// Assignment links a product to a supplier with a cost price.
type Assignment struct {
	AssignmentID int64   `json:"idAsignacion"`
	ProductID    int64   `json:"productoId"`
	ProductName  string  `json:"productoNombre"`
	SupplierID   int64   `json:"proveedorId"`
	SupplierName string  `json:"proveedorRazonSocial"`
	CostPrice    float64 `json:"precioCosto"`
}

// AssignmentRequest creates a product/supplier assignment.
type AssignmentRequest struct {
	ProductID  int64   `json:"productoId" validate:"required"`
	SupplierID int64   `json:"proveedorId" validate:"required"`
	CostPrice  float64 `json:"precioCosto" validate:"required,gt=0"`
}

// UpdateCostPriceRequest updates the cost price of an assignment.
type UpdateCostPriceRequest struct {
	NewCostPrice float64 `json:"nuevoPrecioCosto" validate:"required,gt=0"`
}

// Supplier mirrors the backend's Proveedor record.
type Supplier struct {
	SupplierID int64  `json:"proveedorId"`
	Name       string `json:"razonSocial"`
	RUC        string `json:"ruc"`
	Phone      string `json:"telefono"`
	Email      string `json:"email"`
}

// SupplierRequest is the create/update payload for suppliers.
type SupplierRequest struct {
	Name  string `json:"razonSocial" validate:"required"`
	RUC   string `json:"ruc" validate:"required"`
	Phone string `json:"telefono"`
	Email string `json:"email" validate:"omitempty,email"`
}

// Category mirrors the backend's Categoria record.
type Category struct {
	CategoryID  int64  `json:"categoriaId"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// CategoryRequest is the create/update payload for categories.
type CategoryRequest struct {
	Name        string `json:"nombre" validate:"required"`
	Description string `json:"descripcion"`
}

// Inventory is one product's stock record.
type Inventory struct {
	InventoryID int64  `json:"inventarioId"`
	ProductID   int64  `json:"productoId"`
	ProductName string `json:"productoNombre"`
	Stock       int    `json:"stock"`
}

// UpdateStockRequest is the payload of PUT /inventario/stock.
type UpdateStockRequest struct {
	ProductID int64 `json:"productoId" validate:"required"`
	NewStock  int   `json:"nuevoStock" validate:"min=0"`
}

// SystemStatus is the health summary exposed by GET /health/status.
type SystemStatus struct {
	Status string            `json:"status"`
	Uptime string            `json:"uptime"`
	Checks map[string]string `json:"checks,omitempty"`
}

// SystemMetrics is the metrics snapshot exposed by GET /health/metrics.
type SystemMetrics struct {
	MemoryUsedMB   float64 `json:"memoryUsedMb"`
	CPUUsedPercent float64 `json:"cpuUsedPercent"`
	RequestCount   int64   `json:"requestCount"`
	ErrorCount     int64   `json:"errorCount"`
}
