package entity

// Unit unidad de medida de un medicamento (caja, frasco, tableta...).
type Unit struct {
	ID           string
	Name         string // único
	Abbreviation string
}
