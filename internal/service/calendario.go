package service

import "time"

var etiquetasMes = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// Mes is a calendar month. Range arithmetic goes through indice, the month
// count since year 0.
type Mes struct {
	Anio int
	Mes  int // 1..12
}

func mesDe(t time.Time) Mes { return Mes{Anio: t.Year(), Mes: int(t.Month())} }

func (m Mes) indice() int { return m.Anio*12 + m.Mes - 1 }

func mesDesdeIndice(i int) Mes { return Mes{Anio: i / 12, Mes: i%12 + 1} }

// Inicio is the first day of the month at UTC midnight.
func (m Mes) Inicio() time.Time {
	return time.Date(m.Anio, time.Month(m.Mes), 1, 0, 0, 0, 0, time.UTC)
}

func (m Mes) Etiqueta() string { return etiquetasMes[m.Mes-1] }

// PaginaMeses is the month sequence selected for one dashboard page.
type PaginaMeses struct {
	Meses        []Mes
	PaginaActual int
	TotalPaginas int
}

// Rango returns [desde, hasta) covering every month of the page.
// Only meaningful when Meses is not empty.
func (p PaginaMeses) Rango() (desde, hasta time.Time) {
	ultimo := p.Meses[len(p.Meses)-1]
	return p.Meses[0].Inicio(), mesDesdeIndice(ultimo.indice() + 1).Inicio()
}

// VentanaMovil selects the ventana months ending with the month of hoy.
func VentanaMovil(hoy time.Time, ventana int) PaginaMeses {
	fin := mesDe(hoy).indice()
	return PaginaMeses{
		Meses:        secuencia(fin-ventana+1, fin),
		PaginaActual: 1,
		TotalPaginas: 1,
	}
}

// PaginaAnual pages January..December of anio in chunks of ventana months.
func PaginaAnual(anio, pagina, ventana int) PaginaMeses {
	return paginar(Mes{Anio: anio, Mes: 1}.indice(), Mes{Anio: anio, Mes: 12}.indice(), pagina, ventana)
}

// PaginaHistorica pages the inclusive span [min, max].
func PaginaHistorica(min, max Mes, pagina, ventana int) PaginaMeses {
	return paginar(min.indice(), max.indice(), pagina, ventana)
}

// SinHistoria is the page returned when the fact table has no rows.
func SinHistoria(pagina int) PaginaMeses {
	return PaginaMeses{Meses: []Mes{}, PaginaActual: pagina, TotalPaginas: 0}
}

func paginar(desde, hasta, pagina, ventana int) PaginaMeses {
	total := hasta - desde + 1
	p := PaginaMeses{
		Meses:        []Mes{},
		PaginaActual: pagina,
		TotalPaginas: (total + ventana - 1) / ventana,
	}
	if pagina < 1 || pagina > p.TotalPaginas {
		return p
	}
	inicio := desde + (pagina-1)*ventana
	p.Meses = secuencia(inicio, min(inicio+ventana-1, hasta))
	return p
}

func secuencia(desde, hasta int) []Mes {
	meses := make([]Mes, 0, hasta-desde+1)
	for i := desde; i <= hasta; i++ {
		meses = append(meses, mesDesdeIndice(i))
	}
	return meses
}
