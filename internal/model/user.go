package model

import "time"

// User roles.  CLIENT accounts book and pay for trips; ADMIN
// accounts manage companies, buses, routes and schedules and may
// inspect any booking.
const (
    RoleClient = "CLIENT"
    RoleAdmin  = "ADMIN"
)

// User represents an application user record as stored in the
// `users` table.  Each field corresponds to a column in the
// database.  Handlers define separate response types with JSON
// tags; these structs stay internal to the repository layer.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name of the user.
//  Email        – unique email address.
//  Phone        – contact phone number.
//  PasswordHash – bcrypt hashed password.
//  Role         – CLIENT or ADMIN.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Name         string    // users.name
    Email        string    // users.email
    Phone        string    // users.phone
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and carries expiry and revocation
// metadata.  The plain token is never stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (nil if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
