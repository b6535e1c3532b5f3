package vanna

// Corpus is the fixed grounding material submitted at initialization.
type Corpus struct {
	DDL      []string
	Examples []Example
}

// Size is the number of registration calls the corpus produces.
func (c Corpus) Size() int {
	return len(c.DDL) + len(c.Examples)
}

// DefaultCorpus describes the invoicing schema: vendors and customers issue
// and receive invoices, which carry line items and payments.
func DefaultCorpus() Corpus {
	return Corpus{
		DDL: []string{
			`CREATE TABLE vendors (
    id VARCHAR PRIMARY KEY,
    name VARCHAR NOT NULL,
    email VARCHAR,
    phone VARCHAR,
    address VARCHAR,
    tax_id VARCHAR,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`,
			`CREATE TABLE customers (
    id VARCHAR PRIMARY KEY,
    name VARCHAR NOT NULL,
    email VARCHAR,
    phone VARCHAR,
    address VARCHAR,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`,
			`CREATE TABLE invoices (
    id VARCHAR PRIMARY KEY,
    invoice_number VARCHAR UNIQUE NOT NULL,
    vendor_id VARCHAR REFERENCES vendors(id),
    customer_id VARCHAR REFERENCES customers(id),
    issue_date TIMESTAMP NOT NULL,
    due_date TIMESTAMP,
    total_amount DECIMAL(12,2) NOT NULL,
    paid_amount DECIMAL(12,2) DEFAULT 0,
    status VARCHAR NOT NULL,
    category VARCHAR,
    currency VARCHAR DEFAULT 'USD',
    tax_amount DECIMAL(12,2),
    discount_amount DECIMAL(12,2),
    notes TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`,
			`CREATE TABLE line_items (
    id VARCHAR PRIMARY KEY,
    invoice_id VARCHAR REFERENCES invoices(id),
    description VARCHAR NOT NULL,
    quantity DECIMAL(10,2) NOT NULL,
    unit_price DECIMAL(12,2) NOT NULL,
    amount DECIMAL(12,2) NOT NULL,
    category VARCHAR,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`,
			`CREATE TABLE payments (
    id VARCHAR PRIMARY KEY,
    invoice_id VARCHAR REFERENCES invoices(id),
    amount DECIMAL(12,2) NOT NULL,
    payment_date TIMESTAMP NOT NULL,
    payment_method VARCHAR NOT NULL,
    reference_no VARCHAR,
    notes TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`,
		},
		Examples: []Example{
			{
				Question: "What is the total spend this year?",
				SQL: `SELECT SUM(total_amount) as total_spend
FROM invoices
WHERE EXTRACT(YEAR FROM issue_date) = EXTRACT(YEAR FROM CURRENT_DATE);`,
			},
			{
				Question: "Show me the top 10 vendors by spend",
				SQL: `SELECT v.name, SUM(i.total_amount) as total_spend
FROM vendors v
JOIN invoices i ON v.id = i.vendor_id
GROUP BY v.id, v.name
ORDER BY total_spend DESC
LIMIT 10;`,
			},
			{
				Question: "List all pending invoices",
				SQL: `SELECT invoice_number, total_amount, issue_date, due_date
FROM invoices
WHERE status = 'pending'
ORDER BY due_date;`,
			},
			{
				Question: "What are the overdue invoices?",
				SQL: `SELECT i.invoice_number, v.name as vendor, i.total_amount, i.due_date
FROM invoices i
JOIN vendors v ON i.vendor_id = v.id
WHERE i.status = 'overdue'
ORDER BY i.due_date;`,
			},
		},
	}
}
