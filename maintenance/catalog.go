// Package maintenance reconstructs the current state of a vehicle's
// trackable maintenance items from its delivered work-order history, and
// projects the next service date from mileage deltas. Matching against
// free text is a best-effort classifier, not a parser.
package maintenance

// ItemKey identifies a tracked maintenance item.
type ItemKey string

const (
	OilFilter    ItemKey = "oil_filter"
	AirFilter    ItemKey = "air_filter"
	FuelFilter   ItemKey = "fuel_filter"
	CabinFilter  ItemKey = "cabin_filter"
	EngineOil    ItemKey = "engine_oil"
	Coolant      ItemKey = "coolant"
	BrakeFluid   ItemKey = "brake_fluid"
	GearboxOil   ItemKey = "gearbox_oil"
	Tyres        ItemKey = "tyres"
	TireRotation ItemKey = "tire_rotation"
	Wipers       ItemKey = "wipers"
	Battery      ItemKey = "battery"
)

type ItemCategory string

const (
	CategoryFilters  ItemCategory = "Filtros"
	CategoryFluids   ItemCategory = "Fluidos"
	CategoryServices ItemCategory = "Servicios"
)

// ItemDef describes one tracked item: display label, category, and the
// lowercase keyword fragments used for fuzzy matching against line-item
// descriptions, notes and service names. Free text arrives with and without
// accents, so both variants are listed where they differ.
type ItemDef struct {
	Key      ItemKey
	Label    string
	Category ItemCategory
	Keywords []string
}

// Catalog is the fixed tracked-item table, in display order.
var Catalog = []ItemDef{
	{OilFilter, "Filtro de aceite", CategoryFilters, []string{"filtro de aceite", "filtro aceite"}},
	{AirFilter, "Filtro de aire", CategoryFilters, []string{"filtro de aire", "filtro aire"}},
	{FuelFilter, "Filtro de combustible", CategoryFilters, []string{"filtro de combustible", "filtro combustible", "filtro de nafta", "filtro nafta", "filtro de gasoil"}},
	{CabinFilter, "Filtro de habitáculo", CategoryFilters, []string{"filtro de habitaculo", "filtro de habitáculo", "filtro habitaculo", "filtro de cabina", "filtro antipolen", "filtro polen"}},
	{EngineOil, "Aceite de motor", CategoryFluids, []string{"aceite de motor", "cambio de aceite", "aceite motor"}},
	{Coolant, "Refrigerante", CategoryFluids, []string{"refrigerante", "liquido refrigerante", "líquido refrigerante", "coolant"}},
	{BrakeFluid, "Líquido de frenos", CategoryFluids, []string{"liquido de frenos", "líquido de frenos", "dot 4", "dot4", "dot 3"}},
	{GearboxOil, "Aceite de caja", CategoryFluids, []string{"aceite de caja", "valvulina", "aceite caja"}},
	{Tyres, "Neumáticos", CategoryServices, []string{"neumatico", "neumático", "cubierta", "goma"}},
	{TireRotation, "Rotación de neumáticos", CategoryServices, []string{"rotacion", "rotación", "alineacion", "alineación", "balanceo"}},
	{Wipers, "Escobillas", CategoryServices, []string{"escobilla", "limpiaparabrisas"}},
	{Battery, "Batería", CategoryServices, []string{"bateria", "batería"}},
}

// catalogByKey is derived once for extractor lookups.
var catalogByKey = func() map[ItemKey]ItemDef {
	m := make(map[ItemKey]ItemDef, len(Catalog))
	for _, def := range Catalog {
		m[def.Key] = def
	}
	return m
}()

// Lookup returns the catalog definition for a key.
func Lookup(key ItemKey) (ItemDef, bool) {
	def, ok := catalogByKey[key]
	return def, ok
}
