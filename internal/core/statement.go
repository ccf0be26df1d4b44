package core

import "github.com/shopspring/decimal"

const dateLayout = "2006-01-02"

var oneHundred = decimal.NewFromInt(100)

// BuildStatement computes the consolidated statement for one sale order at
// the given MXN-per-USD rate. Pure: it reads the order graph and writes
// nothing. rate must be the single snapshot taken for the whole report.
func BuildStatement(order *SaleOrder, rate decimal.Decimal) Statement {
	currency := order.Currency
	if currency == "" {
		currency = CurrencyUSD
	}
	hasRate := rate.IsPositive()

	stmt := Statement{
		OrderName:     order.Name,
		SellerName:    order.SellerName,
		Currency:      currency,
		AmountUntaxed: order.AmountUntaxed,
		AmountTax:     order.AmountTax,
		AmountTotal:   order.AmountTotal,
	}
	if !order.DateOrder.IsZero() {
		stmt.OrderDate = order.DateOrder.Format(dateLayout)
	}

	for _, line := range order.Lines {
		if line.DisplayType != "" {
			continue
		}
		if !line.HasProduct {
			continue
		}

		sl := StatementLine{
			ProductName:  line.ProductName,
			QtyOrdered:   line.QtyOrdered,
			QtyDelivered: line.QtyDelivered,
			QtyPending:   decimal.Max(line.QtyOrdered.Sub(line.QtyDelivered), decimal.Zero),
			PriceUnit:    line.PriceUnit,
			Subtotal:     line.Subtotal,
			Tax:          line.Tax,
			Total:        line.Total,
			Currency:     currency,
			UoM:          line.UoM,
		}
		if line.QtyOrdered.IsPositive() {
			sl.PctDelivered = line.QtyDelivered.Div(line.QtyOrdered).Mul(oneHundred)
		}
		if sl.UoM == "" {
			sl.UoM = "m²"
		}

		switch {
		case currency == CurrencyUSD && hasRate:
			sl.PriceUnitAlt = line.PriceUnit.Mul(rate)
			sl.SubtotalAlt = line.Subtotal.Mul(rate)
			sl.TotalAlt = line.Total.Mul(rate)
			sl.CurrencyAlt = CurrencyMXN
		case currency == CurrencyMXN && hasRate:
			sl.PriceUnitAlt = line.PriceUnit.Div(rate)
			sl.SubtotalAlt = line.Subtotal.Div(rate)
			sl.TotalAlt = line.Total.Div(rate)
			sl.CurrencyAlt = CurrencyUSD
		default:
			sl.CurrencyAlt = CurrencyUnavailable
		}

		if line.ProductType == ProductTypeService {
			stmt.ServiceLines = append(stmt.ServiceLines, sl)
		} else {
			stmt.MaterialLines = append(stmt.MaterialLines, sl)
		}
	}

	totalPaid := decimal.Zero
	for _, inv := range order.Invoices {
		for _, payment := range inv.Payments {
			sp := StatementPayment{
				Name:     payment.Name,
				Amount:   payment.Amount,
				Currency: payment.Currency,
			}
			if !payment.Date.IsZero() {
				sp.Date = payment.Date.Format(dateLayout)
			}
			stmt.Payments = append(stmt.Payments, sp)

			switch {
			case payment.Currency == currency:
				totalPaid = totalPaid.Add(payment.Amount)
			case payment.Currency == CurrencyMXN && currency == CurrencyUSD && hasRate:
				totalPaid = totalPaid.Add(payment.Amount.Div(rate))
			case payment.Currency == CurrencyUSD && currency == CurrencyMXN && hasRate:
				totalPaid = totalPaid.Add(payment.Amount.Mul(rate))
			default:
				// No conversion rule applies: the raw amount is added as-is,
				// matching the upstream accounting policy.
				totalPaid = totalPaid.Add(payment.Amount)
			}
		}
	}

	stmt.TotalPaid = totalPaid
	stmt.Balance = order.AmountTotal.Sub(totalPaid)

	switch {
	case currency == CurrencyUSD && hasRate:
		stmt.BalanceUSD = stmt.Balance
		stmt.BalanceMXN = stmt.Balance.Mul(rate)
		stmt.TotalUSD = order.AmountTotal
		stmt.TotalMXN = order.AmountTotal.Mul(rate)
	case currency == CurrencyMXN && hasRate:
		stmt.BalanceMXN = stmt.Balance
		stmt.BalanceUSD = stmt.Balance.Div(rate)
		stmt.TotalMXN = order.AmountTotal
		stmt.TotalUSD = order.AmountTotal.Div(rate)
	default:
		if currency == CurrencyUSD {
			stmt.BalanceUSD = stmt.Balance
			stmt.TotalUSD = order.AmountTotal
		}
		if currency == CurrencyMXN {
			stmt.BalanceMXN = stmt.Balance
			stmt.TotalMXN = order.AmountTotal
		}
	}

	return stmt
}
