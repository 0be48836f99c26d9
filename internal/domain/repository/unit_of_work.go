package repository

// UnitOfWork agrupa los repositorios atados a una misma transacción de BD.
// Lo construye el adaptador de persistencia dentro de TxRunner.Run.
type UnitOfWork struct {
	Articles      ArticleRepository
	KitComponents KitComponentRepository
	Warehouses    WarehouseRepository
	Kardex        KardexRepository
	Transactions  InventoryTransactionRepository
	CashRegisters CashRegisterRepository
	Invoices      InvoiceRepository
	Tables        TableRepository
	Customers     CustomerRepository
	Receivables   ReceivableRepository
}
