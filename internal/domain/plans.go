package domain

// Plan is one subscription option in the partner's catalog.
type Plan struct {
	ID       string
	Operator string
	Name     string
	Price    float64
	ESIM     bool
}

// Chip types accepted by the partner.
const (
	ChipPhysical = "fisico"
	ChipESIM     = "eSim"
)

// Freight types accepted by the partner, and their human-readable labels
// used in notification payloads.
const (
	FreightLetter = "Carta"
	FreightNone   = "semFrete"
	FreightESIM   = "eSim"
)

// Registration type sent to the partner. Only recurring subscriptions exist.
const RegistrationTypeRecurring = "Recorrente"

// Plans is the fixed partner plan catalog, keyed by operator.
var Plans = map[string][]Plan{
	"VIVO": {
		{ID: "178", Operator: "VIVO", Name: "40GB COM LIGACAO", Price: 49.9, ESIM: true},
		{ID: "69", Operator: "VIVO", Name: "80GB COM LIGACAO", Price: 69.9, ESIM: true},
		{ID: "61", Operator: "VIVO", Name: "150GB COM LIGACAO", Price: 99.9, ESIM: true},
	},
	"TIM": {
		{ID: "56", Operator: "TIM", Name: "100GB COM LIGACAO", Price: 69.9, ESIM: true},
		{ID: "154", Operator: "TIM", Name: "200GB SEM LIGAÇÃO", Price: 159.9, ESIM: true},
		{ID: "155", Operator: "TIM", Name: "300GB SEM LIGAÇÃO", Price: 199.9, ESIM: true},
	},
	"CLARO": {
		{ID: "57", Operator: "CLARO", Name: "80GB COM LIGACAO", Price: 69.9, ESIM: true},
		{ID: "183", Operator: "CLARO", Name: "150GB COM LIGACAO", Price: 99.9, ESIM: true},
	},
}

// PlanByID returns the plan with the given id, or false when unknown.
func PlanByID(id string) (Plan, bool) {
	for _, plans := range Plans {
		for _, p := range plans {
			if p.ID == id {
				return p, true
			}
		}
	}
	return Plan{}, false
}

// PlanLabel renders "OPERATOR - PLAN NAME" for notification payloads, or a
// fallback when the id is not in the catalog.
func PlanLabel(id string) string {
	p, ok := PlanByID(id)
	if !ok {
		return "Plano não identificado"
	}
	return p.Operator + " - " + p.Name
}

// ChipLabel returns the human-readable chip type for notification payloads.
func ChipLabel(chipType string) string {
	if chipType == ChipESIM {
		return "e-SIM"
	}
	return "Físico"
}

// FreightLabel returns the human-readable shipping method for notification
// payloads. Unknown values map to an empty string.
func FreightLabel(freightType string) string {
	switch freightType {
	case FreightLetter:
		return "Carta Registrada"
	case FreightNone:
		return "Retirar na Associação"
	case FreightESIM:
		return "e-SIM"
	default:
		return ""
	}
}
