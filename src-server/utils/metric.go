package utils

type Metric struct {
	DatabaseRead  chan float64
	DatabaseWrite chan float64
}

func NewMetric() *Metric {
	return &Metric{
		DatabaseRead:  make(chan float64, 64),
		DatabaseWrite: make(chan float64, 64),
	}
}

// drops the sample when nobody is collecting
func (m *Metric) ObserveDatabaseRead(microsec float64) {
	select {
	case m.DatabaseRead <- microsec:
	default:
	}
}

// drops the sample when nobody is collecting
func (m *Metric) ObserveDatabaseWrite(microsec float64) {
	select {
	case m.DatabaseWrite <- microsec:
	default:
	}
}
