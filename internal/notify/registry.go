package notify

import "regexp"

// DefaultRegistry returns the built-in institutions. Template order matters:
// the first matching template decides the transaction kind, so the most
// specific phrasings come first.
func DefaultRegistry() *Registry {
	return &Registry{institutions: []Institution{
		{
			Name:     "Nubank",
			Packages: []string{"nubank", "nu.production"},
			Templates: []Template{
				// "Compra aprovada: R$ 45,90 em NETFLIX.COM"
				{KindPurchase, regexp.MustCompile(`(?i)compra (?:aprovada|no crédito|no débito).*?r\$\s*([0-9.,]+).*?\bem\s+(.+)$`)},
				// "Você fez um Pix de R$ 50,00 para João Silva"
				{KindPixSent, regexp.MustCompile(`(?i)você fez um pix de r\$\s*([0-9.,]+)(?:.*?\bpara\s+(.+))?$`)},
				// "Você recebeu um Pix de R$ 100,00 de Maria Santos"
				{KindPixReceived, regexp.MustCompile(`(?i)você recebeu um pix de r\$\s*([0-9.,]+)(?:.*?\bde\s+(.+))?$`)},
				// "TED realizada de R$ 200,00 para Conta Corrente"
				{KindTransfer, regexp.MustCompile(`(?i)(?:ted|doc) realizada de r\$\s*([0-9.,]+)`)},
				// "Saque realizado de R$ 100,00"
				{KindWithdrawal, regexp.MustCompile(`(?i)saque realizado de r\$\s*([0-9.,]+)`)},
				// "Depósito de R$ 500,00 realizado"
				{KindDeposit, regexp.MustCompile(`(?i)depósito de r\$\s*([0-9.,]+)`)},
			},
		},
		{
			Name:     "Bradesco",
			Packages: []string{"bradesco", "com.bradesco"},
			Templates: []Template{
				// "Compra Cartão Débito R$ 25,50 - SUPERMERCADO ABC"
				{KindPurchase, regexp.MustCompile(`(?i)compra cartão (?:débito|crédito) r\$\s*([0-9.,]+)\s*-\s*(.+)$`)},
				// "PIX Enviado R$ 75,00 - João Silva"
				{KindPixSent, regexp.MustCompile(`(?i)pix enviado r\$\s*([0-9.,]+)\s*-\s*(.+)$`)},
				// "PIX Recebido R$ 150,00 - Maria Santos"
				{KindPixReceived, regexp.MustCompile(`(?i)pix recebido r\$\s*([0-9.,]+)\s*-\s*(.+)$`)},
				// "Transferência Enviada R$ 300,00"
				{KindTransfer, regexp.MustCompile(`(?i)transferência enviada r\$\s*([0-9.,]+)`)},
				// "Saque Cartão R$ 200,00"
				{KindWithdrawal, regexp.MustCompile(`(?i)saque cartão r\$\s*([0-9.,]+)`)},
			},
		},
	}}
}
