package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/JuannJ22/Rent-sub000/internal/model"
)

// CrearRegistro inserta un registro en estado procesando y devuelve su id.
func (s *Store) CrearRegistro(tipo, mes string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(`
		INSERT INTO registros_generacion (id, tipo, mes, estado)
		VALUES (?, ?, ?, ?)
	`, id, tipo, mes, model.EstadoProcesando)
	if err != nil {
		return "", fmt.Errorf("no se pudo crear el registro: %w", err)
	}
	return id, nil
}

// CompletarRegistro cierra un registro con su resultado final.
func (s *Store) CompletarRegistro(id, rutaSalida string, filas int, duracionMs int64, estado, mensaje string) error {
	_, err := s.db.Exec(`
		UPDATE registros_generacion SET
			ruta_salida = ?,
			filas = ?,
			duracion_ms = ?,
			estado = ?,
			mensaje = ?
		WHERE id = ?
	`, rutaSalida, filas, duracionMs, estado, mensaje, id)
	if err != nil {
		return fmt.Errorf("no se pudo completar el registro: %w", err)
	}
	return nil
}

// ListarRegistros registros más recientes primero, hasta el límite dado.
func (s *Store) ListarRegistros(limite int) ([]model.RegistroGeneracion, error) {
	if limite <= 0 {
		limite = 50
	}
	rows, err := s.db.Query(`
		SELECT id, tipo, mes, ruta_salida, filas, duracion_ms, estado, mensaje, creado_en
		FROM registros_generacion
		ORDER BY creado_en DESC, id
		LIMIT ?
	`, limite)
	if err != nil {
		return nil, fmt.Errorf("no se pudo consultar el historial: %w", err)
	}
	defer rows.Close()

	var out []model.RegistroGeneracion
	for rows.Next() {
		var r model.RegistroGeneracion
		if err := rows.Scan(&r.ID, &r.Tipo, &r.Mes, &r.RutaSalida, &r.Filas, &r.DuracionMs, &r.Estado, &r.Mensaje, &r.CreadoEn); err != nil {
			return nil, fmt.Errorf("no se pudo leer el historial: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("no se pudo recorrer el historial: %w", err)
	}
	return out, nil
}

// ObtenerRegistro un registro por id.
func (s *Store) ObtenerRegistro(id string) (model.RegistroGeneracion, error) {
	var r model.RegistroGeneracion
	err := s.db.QueryRow(`
		SELECT id, tipo, mes, ruta_salida, filas, duracion_ms, estado, mensaje, creado_en
		FROM registros_generacion
		WHERE id = ?
	`, id).Scan(&r.ID, &r.Tipo, &r.Mes, &r.RutaSalida, &r.Filas, &r.DuracionMs, &r.Estado, &r.Mensaje, &r.CreadoEn)
	if err != nil {
		return model.RegistroGeneracion{}, fmt.Errorf("no se pudo obtener el registro %s: %w", id, err)
	}
	return r, nil
}
