package domain

// ChartAccount is one row of the seed chart of accounts.
type ChartAccount struct {
	Code string
	Name string
	Type AccountType
}

// DefaultChart is the default WEG (Wohnungseigentümergemeinschaft) chart of
// accounts, based on SKR 04 adapted for property management. Seeding is
// idempotent: accounts already present by code are left untouched.
var DefaultChart = []ChartAccount{
	// Assets (1000-1999)
	{Code: "1000", Name: "Bank", Type: AccountTypeAsset},
	{Code: "1100", Name: "Instandhaltungsrücklage", Type: AccountTypeAsset},
	{Code: "1200", Name: "Forderungen Eigentümer", Type: AccountTypeAsset},
	{Code: "1210", Name: "Forderungen Hausgeld", Type: AccountTypeAsset},
	{Code: "1220", Name: "Forderungen Sonderumlagen", Type: AccountTypeAsset},
	{Code: "1300", Name: "Sonstige Forderungen", Type: AccountTypeAsset},
	{Code: "1400", Name: "Kasse", Type: AccountTypeAsset},
	{Code: "1500", Name: "Rechnungsabgrenzungsposten", Type: AccountTypeAsset},

	// Liabilities (2000-2999)
	{Code: "2000", Name: "Verbindlichkeiten", Type: AccountTypeLiability},
	{Code: "2100", Name: "Hausgeld-Vorauszahlungen", Type: AccountTypeLiability},
	{Code: "2110", Name: "Erhaltene Vorauszahlungen Hausgeld", Type: AccountTypeLiability},
	{Code: "2200", Name: "Erhaltene Sonderumlagen", Type: AccountTypeLiability},
	{Code: "2300", Name: "Verbindlichkeiten aus Lieferungen", Type: AccountTypeLiability},
	{Code: "2400", Name: "Rückstellungen", Type: AccountTypeLiability},
	{Code: "2500", Name: "Darlehen", Type: AccountTypeLiability},

	// Equity (3000-3999)
	{Code: "3000", Name: "Eigenkapital", Type: AccountTypeEquity},
	{Code: "3100", Name: "Rücklagen", Type: AccountTypeEquity},
	{Code: "3200", Name: "Jahresüberschuss/Jahresfehlbetrag", Type: AccountTypeEquity},
	{Code: "3300", Name: "Vortrag Vorjahr", Type: AccountTypeEquity},

	// Income (4000-4999)
	{Code: "4000", Name: "Hausgeld-Einnahmen", Type: AccountTypeIncome},
	{Code: "4010", Name: "Hausgeld laufendes Jahr", Type: AccountTypeIncome},
	{Code: "4020", Name: "Hausgeld Nachzahlungen", Type: AccountTypeIncome},
	{Code: "4100", Name: "Sonderumlagen", Type: AccountTypeIncome},
	{Code: "4110", Name: "Sonderumlage Instandhaltung", Type: AccountTypeIncome},
	{Code: "4120", Name: "Sonderumlage Modernisierung", Type: AccountTypeIncome},
	{Code: "4200", Name: "Zinserträge", Type: AccountTypeIncome},
	{Code: "4300", Name: "Mieteinnahmen", Type: AccountTypeIncome},
	{Code: "4310", Name: "Mieten Gemeinschaftseigentum", Type: AccountTypeIncome},
	{Code: "4400", Name: "Betriebskostenerstattungen", Type: AccountTypeIncome},
	{Code: "4500", Name: "Versicherungserstattungen", Type: AccountTypeIncome},
	{Code: "4900", Name: "Sonstige Einnahmen", Type: AccountTypeIncome},

	// Expenses (6000-6999)
	{Code: "6000", Name: "Instandhaltung und Instandsetzung", Type: AccountTypeExpense},
	{Code: "6010", Name: "Reparaturen Gebäude", Type: AccountTypeExpense},
	{Code: "6020", Name: "Reparaturen Heizung", Type: AccountTypeExpense},
	{Code: "6030", Name: "Reparaturen Aufzug", Type: AccountTypeExpense},
	{Code: "6040", Name: "Reparaturen Außenanlagen", Type: AccountTypeExpense},
	{Code: "6050", Name: "Wartung und Inspektion", Type: AccountTypeExpense},

	{Code: "6100", Name: "Hausmeister", Type: AccountTypeExpense},
	{Code: "6110", Name: "Hausmeisterlohn", Type: AccountTypeExpense},
	{Code: "6120", Name: "Hausmeistermaterial", Type: AccountTypeExpense},

	{Code: "6200", Name: "Versicherungen", Type: AccountTypeExpense},
	{Code: "6210", Name: "Gebäudeversicherung", Type: AccountTypeExpense},
	{Code: "6220", Name: "Haftpflichtversicherung", Type: AccountTypeExpense},
	{Code: "6230", Name: "Elementarversicherung", Type: AccountTypeExpense},

	{Code: "6300", Name: "Grundsteuer", Type: AccountTypeExpense},

	{Code: "6400", Name: "Heizkosten", Type: AccountTypeExpense},
	{Code: "6410", Name: "Brennstoffe", Type: AccountTypeExpense},
	{Code: "6420", Name: "Heizwartung", Type: AccountTypeExpense},
	{Code: "6430", Name: "Schornsteinfeger", Type: AccountTypeExpense},

	{Code: "6500", Name: "Wasser und Abwasser", Type: AccountTypeExpense},
	{Code: "6510", Name: "Wasserversorgung", Type: AccountTypeExpense},
	{Code: "6520", Name: "Abwassergebühren", Type: AccountTypeExpense},

	{Code: "6600", Name: "Müllabfuhr", Type: AccountTypeExpense},

	{Code: "6700", Name: "Strom Allgemeinstrom", Type: AccountTypeExpense},
	{Code: "6710", Name: "Strom Treppenhaus", Type: AccountTypeExpense},
	{Code: "6720", Name: "Strom Außenbeleuchtung", Type: AccountTypeExpense},
	{Code: "6730", Name: "Strom Aufzug", Type: AccountTypeExpense},

	{Code: "6800", Name: "Verwaltungskosten", Type: AccountTypeExpense},
	{Code: "6810", Name: "Verwaltergebühr", Type: AccountTypeExpense},
	{Code: "6820", Name: "Kontoführungsgebühren", Type: AccountTypeExpense},
	{Code: "6830", Name: "Wirtschaftsprüfung", Type: AccountTypeExpense},
	{Code: "6840", Name: "Rechts- und Beratungskosten", Type: AccountTypeExpense},

	{Code: "6900", Name: "Sonstige Kosten", Type: AccountTypeExpense},
	{Code: "6910", Name: "Gartenpflege", Type: AccountTypeExpense},
	{Code: "6920", Name: "Winterdienst", Type: AccountTypeExpense},
	{Code: "6930", Name: "Reinigung", Type: AccountTypeExpense},
	{Code: "6940", Name: "Ungezieferbekämpfung", Type: AccountTypeExpense},
	{Code: "6950", Name: "Prüfungen (TÜV, etc.)", Type: AccountTypeExpense},
	{Code: "6960", Name: "Porto und Kommunikation", Type: AccountTypeExpense},
	{Code: "6970", Name: "Büromaterial", Type: AccountTypeExpense},
	{Code: "6980", Name: "Gemeinschaftsraum", Type: AccountTypeExpense},
	{Code: "6990", Name: "Sonstige Betriebskosten", Type: AccountTypeExpense},
}

// ChartAccountByCode looks up a seed account by its 4-digit code.
func ChartAccountByCode(code string) (ChartAccount, bool) {
	for _, a := range DefaultChart {
		if a.Code == code {
			return a, true
		}
	}

	return ChartAccount{}, false
}

// ChartAccountsByType filters the seed chart by account type.
func ChartAccountsByType(t AccountType) []ChartAccount {
	var accounts []ChartAccount

	for _, a := range DefaultChart {
		if a.Type == t {
			accounts = append(accounts, a)
		}
	}

	return accounts
}
