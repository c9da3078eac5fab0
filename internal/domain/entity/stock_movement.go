package entity

import "time"

// Tipos de movimiento de stock. El signo del efecto sobre el inventario se deriva
// del tipo (ver domain/inventory.RuleFor), nunca se almacena.
const (
	MovementProduccion    = "PRODUCCION"    // producción propia: entrada en destino
	MovementCompra        = "COMPRA"        // compra a proveedor: entrada en destino
	MovementSobrante      = "SOBRANTE"      // sobrante de conteo: entrada en destino
	MovementVenta         = "VENTA"         // venta: salida de origen
	MovementMerma         = "MERMA"         // merma/caducidad: salida de origen
	MovementPerdidaRobo   = "PERDIDA_ROBO"  // pérdida o robo: salida de origen
	MovementTransferencia = "TRANSFERENCIA" // traslado entre sucursales: salida y entrada
)

// StockMovement es un hecho inmutable del libro de movimientos: nunca se
// actualiza ni se borra. Quantity se guarda siempre positiva.
type StockMovement struct {
	ID           string
	Type         string
	Quantity     int64
	ProductID    string
	FromBranchID *string
	ToBranchID   *string
	UserID       *string
	ReferenceID  string // pedido, factura de compra, acta de conteo...
	Note         string
	CreatedAt    time.Time
}
