// Package catalog loads the program catalog from CSV and answers simple
// questions about it.
//
// The CSV has a header row. Required columns are Provider Name, Program
// Name, Day of the week, Start time, End time and Interest Category.
// Optional columns are read when present:
//
//	Min Age, Max Age, Address, Program Type, Grade_Level (or Grade Level),
//	Cost, Cost Per Class, Enrollment Type, Website, Contact Phone,
//	School Pickup From, Start date, End date
//
// Rows are validated as they are read; the first malformed row aborts the
// load with a *RowError naming the offending column.
package catalog
