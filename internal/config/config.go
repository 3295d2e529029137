package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"    // time expresses the booking policy durations
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable; required variables are
// enforced by must() and missing values stop the process at startup.
type Config struct {
    Env  string // application environment (e.g. "dev", "prod")
    Port string // HTTP port to listen on

    DBUser string // database username
    DBPass string // database password (optional)
    DBHost string // database host address
    DBPort string // database port number
    DBName string // database name

    JWTSecret      string // secret used to sign JWTs
    AccessTTLMin   int    // access token time-to-live in minutes
    RefreshTTLDays int    // refresh token time-to-live in days
    BcryptCost     int    // bcrypt cost for password hashing

    // Booking policy knobs.
    HoldTTL            time.Duration // lifetime of a DRAFT booking and its seat holds
    PaymentTTL         time.Duration // payment window opened on DRAFT -> PENDING_PAYMENT
    MaxSeatsPerBooking int           // maximum logical seats per booking
    SweepInterval      time.Duration // period of the background expiry sweep; 0 disables it

    // Pricing surcharges, in cents.
    EveningSurchargeCents int // added per seat for shows starting at or after EveningFromHour
    EveningFromHour       int // UTC hour from which the evening surcharge applies
    WeekendSurchargeCents int // added per seat for Saturday and Sunday shows
}

// Load reads configuration from the environment.  Booking knobs have
// sensible defaults so only the service and database settings are
// strictly required.
func Load() Config {
    return Config{
        Env:            must("APP_ENV"),
        Port:           must("APP_PORT"),
        DBUser:         must("DB_USER"),
        DBPass:         os.Getenv("DB_PASS"), // empty allowed
        DBHost:         must("DB_HOST"),
        DBPort:         must("DB_PORT"),
        DBName:         must("DB_NAME"),
        JWTSecret:      must("JWT_SECRET"),
        AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
        RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
        BcryptCost:     mustInt("BCRYPT_COST"),

        HoldTTL:            minutes("HOLD_TTL_MIN", 5),
        PaymentTTL:         minutes("PAYMENT_TTL_MIN", 15),
        MaxSeatsPerBooking: intDefault("MAX_SEATS_PER_BOOKING", 5),
        SweepInterval:      minutes("SWEEP_INTERVAL_MIN", 0),

        EveningSurchargeCents: intDefault("EVENING_SURCHARGE_CENTS", 0),
        EveningFromHour:       intDefault("EVENING_FROM_HOUR", 18),
        WeekendSurchargeCents: intDefault("WEEKEND_SURCHARGE_CENTS", 0),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// intDefault reads an optional integer variable.
func intDefault(key string, def int) int {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// minutes reads an optional integer variable expressed in minutes.
func minutes(key string, def int) time.Duration {
    return time.Duration(intDefault(key, def)) * time.Minute
}
