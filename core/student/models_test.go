package student

import (
	"testing"
	"time"
)

func TestIsValidIndexNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "valid ITS", input: "BC/ITS/24/001", want: true},
		{name: "valid ITN", input: "BC/ITN/23/250", want: true},
		{name: "short spec", input: "BC/IT/24/1", want: false},
		{name: "short sequence", input: "BC/ITS/24/1", want: false},
		{name: "empty", input: "", want: false},
		{name: "lowercase", input: "bc/its/24/001", want: false},
		{name: "trailing junk", input: "BC/ITS/24/001x", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidIndexNumber(tt.input); got != tt.want {
				t.Errorf("IsValidIndexNumber(%q) = %v; want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGroupFromIndexNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Group
		wantOK bool
	}{
		{name: "001 -> A", input: "BC/ITS/24/001", want: GroupA, wantOK: true},
		{name: "050 -> A", input: "BC/ITS/24/050", want: GroupA, wantOK: true},
		{name: "051 -> B", input: "BC/ITS/24/051", want: GroupB, wantOK: true},
		{name: "150 -> C", input: "BC/ITD/24/150", want: GroupC, wantOK: true},
		{name: "200 -> D", input: "BC/ITN/24/200", want: GroupD, wantOK: true},
		{name: "201 -> E", input: "BC/ITN/24/201", want: GroupE, wantOK: true},
		{name: "250 -> E", input: "BC/ITN/24/250", want: GroupE, wantOK: true},
		{name: "999 out of bands", input: "BC/ITS/24/999", wantOK: false},
		{name: "000 out of bands", input: "BC/ITS/24/000", wantOK: false},
		{name: "no numeric suffix", input: "BC/ITS/24/xyz", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GroupFromIndexNumber(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("GroupFromIndexNumber(%q) ok = %v; want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("GroupFromIndexNumber(%q) = %v; want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSpecializationFromIndexNumber(t *testing.T) {
	tests := []struct {
		input  string
		want   Specialization
		wantOK bool
	}{
		{input: "BC/ITS/24/001", want: SpecSoftware, wantOK: true},
		{input: "BC/ITN/24/001", want: SpecNetworking, wantOK: true},
		{input: "BC/ITD/24/001", want: SpecDataManagement, wantOK: true},
		{input: "BC/ITX/24/001", wantOK: false},
		{input: "XX/ITS/24/001", wantOK: false},
		{input: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := SpecializationFromIndexNumber(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("SpecializationFromIndexNumber(%q) ok = %v; want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("SpecializationFromIndexNumber(%q) = %v; want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name      string
		due, paid float64
		want      PaymentStatus
	}{
		{name: "nothing paid", due: 150, paid: 0, want: StatusOutstanding},
		{name: "partial", due: 150, paid: 100, want: StatusPartial},
		{name: "exactly due", due: 150, paid: 150, want: StatusFull},
		{name: "overpaid", due: 150, paid: 200, want: StatusFull},
		{name: "tiny payment", due: 150, paid: 0.01, want: StatusPartial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DerivePaymentStatus(tt.due, tt.paid)
			if got != tt.want {
				t.Errorf("DerivePaymentStatus(%v, %v) = %v; want %v", tt.due, tt.paid, got, tt.want)
			}
			// recomputing from the same inputs is stable
			if again := DerivePaymentStatus(tt.due, tt.paid); again != got {
				t.Errorf("DerivePaymentStatus() not idempotent: %v then %v", got, again)
			}
		})
	}
}

func TestStudent_ApplyPayment(t *testing.T) {
	st := Student{
		Name:            "Ama Mensah",
		IndexNumber:     "BC/ITS/24/001",
		TotalAmountDue:  150,
		TotalAmountPaid: 100,
		PaymentStatus:   StatusPartial,
		UpdatedAt:       time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC),
	}

	got := st.ApplyPayment(50)
	if got.TotalAmountPaid != 150 {
		t.Errorf("TotalAmountPaid = %v; want 150", got.TotalAmountPaid)
	}
	if got.PaymentStatus != StatusFull {
		t.Errorf("PaymentStatus = %v; want %v", got.PaymentStatus, StatusFull)
	}
	if got.RemainingBalance() != 0 {
		t.Errorf("RemainingBalance() = %v; want 0", got.RemainingBalance())
	}
	if !got.UpdatedAt.After(st.UpdatedAt) {
		t.Errorf("UpdatedAt was not bumped")
	}
	// original value untouched
	if st.TotalAmountPaid != 100 {
		t.Errorf("receiver mutated: TotalAmountPaid = %v", st.TotalAmountPaid)
	}
}

func TestStudent_ApplyPayment_Monotonic(t *testing.T) {
	st := Student{TotalAmountDue: 1000}
	amounts := []float64{100, 250, 50, 300}
	var sum float64
	prevBalance := st.RemainingBalance()
	for _, a := range amounts {
		st = st.ApplyPayment(a)
		sum += a
		if st.TotalAmountPaid != sum {
			t.Fatalf("TotalAmountPaid = %v; want %v", st.TotalAmountPaid, sum)
		}
		if bal := st.RemainingBalance(); bal > prevBalance {
			t.Fatalf("RemainingBalance() increased: %v -> %v", prevBalance, bal)
		} else if bal < 0 {
			t.Fatalf("RemainingBalance() negative: %v", bal)
		} else {
			prevBalance = bal
		}
	}
}

func TestStudent_RemainingBalance_NeverNegative(t *testing.T) {
	st := Student{TotalAmountDue: 100, TotalAmountPaid: 500}
	if got := st.RemainingBalance(); got != 0 {
		t.Errorf("RemainingBalance() = %v; want 0", got)
	}
}
