// Package reports arma el corte de caja y las métricas del dashboard a
// partir del ledger de ventas.
package reports

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dramirezh/puntoventa-api/internal/domain"
	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
	"github.com/dramirezh/puntoventa-api/internal/domain/repository"
)

// CorteReport resultado del corte de caja de un turno: desglose por método
// de pago más el fondo inicial del cajero.
type CorteReport struct {
	UserID   string    `json:"user_id"`
	UserName string    `json:"user_name"`
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`

	NumVentas     int                     `json:"num_ventas"`
	Total         decimal.Decimal         `json:"total"`
	PorMetodo     repository.MethodTotals `json:"-"`
	Efectivo      decimal.Decimal         `json:"efectivo"`
	Tarjeta       decimal.Decimal         `json:"tarjeta"`
	Transferencia decimal.Decimal         `json:"transferencia"`
	Mixto         decimal.Decimal         `json:"mixto"`
	// EfectivoNeto billetes que entraron al cajón en el periodo: efectivo
	// recibido menos cambio entregado, contando la parte en efectivo de
	// los pagos mixtos.
	EfectivoNeto decimal.Decimal `json:"efectivo_neto"`

	MontoInicial decimal.Decimal `json:"monto_inicial"`
	// TotalConMontoInicial dinero esperado en el cajón: fondo inicial más
	// el efectivo neto.
	TotalConMontoInicial decimal.Decimal `json:"total_con_monto_inicial"`

	Sales []*entity.Sale `json:"sales"`
}

// CorteUseCase genera el corte de caja del día.
type CorteUseCase struct {
	saleRepo repository.SaleRepository
	userRepo repository.UserRepository
}

// NewCorteUseCase construye el caso de uso de corte.
func NewCorteUseCase(saleRepo repository.SaleRepository, userRepo repository.UserRepository) *CorteUseCase {
	return &CorteUseCase{saleRepo: saleRepo, userRepo: userRepo}
}

// Corte arma el corte del día indicado para targetUserID. Un cajero solo
// puede cortar su propia caja: si no es admin, targetUserID se ignora y el
// corte sale sobre sus propias ventas. targetUserID vacío con admin corta
// todas las cajas.
func (uc *CorteUseCase) Corte(requesterID string, isAdmin bool, targetUserID string, day time.Time) (*CorteReport, error) {
	if !isAdmin {
		targetUserID = requesterID
	}

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	filter := repository.SaleFilter{
		UserID: targetUserID,
		Status: entity.SaleStatusFinalizado,
		From:   &from,
		To:     &to,
		Limit:  1000,
	}

	sales, total, err := uc.saleRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("corte: listar ventas: %w", err)
	}
	totalVendido, porMetodo, err := uc.saleRepo.Totals(filter)
	if err != nil {
		return nil, fmt.Errorf("corte: totales: %w", err)
	}

	report := &CorteReport{
		UserID:        targetUserID,
		From:          from,
		To:            to,
		NumVentas:     total,
		Total:         totalVendido,
		PorMetodo:     porMetodo,
		Efectivo:      porMetodo.Efectivo,
		Tarjeta:       porMetodo.Tarjeta,
		Transferencia: porMetodo.Transferencia,
		Mixto:         porMetodo.Mixto,
		EfectivoNeto:  porMetodo.EfectivoNeto,
		Sales:         sales,
	}

	if targetUserID != "" {
		user, err := uc.userRepo.GetByID(targetUserID)
		if err != nil {
			return nil, fmt.Errorf("corte: usuario: %w", err)
		}
		if user == nil {
			return nil, domain.ErrUserNotFound
		}
		report.UserName = user.Name
		report.MontoInicial = user.MontoInicial
	}
	report.TotalConMontoInicial = report.MontoInicial.Add(report.EfectivoNeto)

	return report, nil
}
