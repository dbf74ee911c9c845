package visit

// allowedTransitions lists, per estado, the states a visit may move to.
// finalizada is terminal.
var allowedTransitions = map[string][]string{
	EstadoPendiente: {EstadoActiva},
	EstadoActiva:    {EstadoFinalizada},
}

func isAllowedTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func isKnownEstado(estado string) bool {
	switch estado {
	case EstadoPendiente, EstadoActiva, EstadoFinalizada:
		return true
	}
	return false
}
