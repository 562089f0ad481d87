package model

import "time"

// Company represents a transport company operating buses on
// interurban routes.  A company owns multiple buses and routes.
// This struct corresponds to a row in the `companies` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique display name of the company.
//  Contact   – phone or email for reaching the operator.
//  CreatedAt – timestamp when the company was created.
//  UpdatedAt – timestamp of last update.
type Company struct {
    ID        uint64    // companies.id
    Name      string    // companies.name
    Contact   string    // companies.contact
    CreatedAt time.Time // companies.created_at
    UpdatedAt time.Time // companies.updated_at
}
